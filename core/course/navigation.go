package course

// Position locates a lesson within its module.
type Position struct {
	Index int // 1-based
	Total int
	Prev  *Lesson
	Next  *Lesson // nil on the last lesson, which completes the module
}

func (p Position) IsLast() bool { return p.Next == nil }

// Navigate locates `lesson` in `module`. ok is false when the lesson is not part of the module.
func Navigate(module Module, lesson Lesson) (pos Position, ok bool) {
	for i, l := range module.Lessons {
		if l.ID != lesson.ID {
			continue
		}
		pos = Position{Index: i + 1, Total: len(module.Lessons)}
		if i > 0 {
			prev := module.Lessons[i-1]
			pos.Prev = &prev
		}
		if i+1 < len(module.Lessons) {
			next := module.Lessons[i+1]
			pos.Next = &next
		}
		return pos, true
	}
	return Position{}, false
}
