package echoweb

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Axelresells/AxelScale-Formacion/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads "?ordering=email,-created_at": a leading "-" sorts descending.
func (ord *Ordering) Bind(ctx echo.Context) {
	val := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// String renders the orderings back into the query parameter format.
func (ord Ordering) String() string {
	fields := make([]string, 0, len(ord.Orderings))
	for _, o := range ord.Orderings {
		if o.Ascending {
			fields = append(fields, o.Field)
		} else {
			fields = append(fields, "-"+o.Field)
		}
	}
	return strings.Join(fields, ",")
}
