package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

const dateTimeLayout = "02/01/2006, 15:04:05"

var (
	errSeedFailed = errors.New("seed failed")

	separator = strings.Repeat("─", 50)
)

func (cl *commandLine) seedAction(c *cli.Context) error {
	if err := cl.seed(c.Context, c.String("email")); err != nil {
		fmt.Fprintln(cl.out, "\n❌ Error durante el seed:")
		fmt.Fprintln(cl.out, err)
		return errSeedFailed
	}
	return nil
}

// seed upserts the ADMIN user with `email` and makes sure they have a subscription.
func (cl *commandLine) seed(ctx context.Context, email string) error {
	if err := cl.validate.Var(email, "required,email"); err != nil {
		return errors.Errorf("invalid email %q", email)
	}

	cl.printf("🌱 Iniciando seed de la base de datos...\n")
	cl.printf("📧 Email del admin: %s\n", email)

	existing, err := cl.usrSvc.GetByEmail(ctx, email)
	switch errors.Cause(err) {
	case nil:
		state := "✗ No tiene"
		if _, err = cl.subSvc.GetByUserID(ctx, existing.ID); err == nil {
			state = "✓ Activa"
		} else if errors.Cause(err) != subscription.ErrNotFound {
			return errors.Wrap(err, "finding subscription")
		}
		cl.printf("👤 Usuario ya existe en la base de datos\n")
		cl.printf("   ID: %s\n", existing.ID)
		cl.printf("   Role actual: %s\n", existing.Role)
		cl.printf("   Suscripción: %s\n", state)
	case user.ErrNotFound: // pass
	default:
		return errors.Wrap(err, "finding user by email")
	}

	usr, created, err := cl.usrSvc.Upsert(ctx, email, user.RoleAdmin)
	if err != nil {
		return errors.Wrap(err, "upserting admin")
	}

	if !created {
		if _, err = cl.subSvc.GetByUserID(ctx, usr.ID); errors.Cause(err) == subscription.ErrNotFound {
			cl.printf("📝 Creando suscripción para usuario existente...\n")
		}
	}
	sub, _, err := cl.subSvc.CreateIfMissing(ctx, usr.ID, subscription.PlanYearly)
	if err != nil {
		return errors.Wrap(err, "creating subscription")
	}

	cl.printf("\n✅ Usuario admin creado/actualizado exitosamente\n")
	cl.printf("%s\n", separator)
	cl.printf("📋 Detalles del usuario:\n")
	cl.printf("   ID: %s\n", usr.ID)
	cl.printf("   Email: %s\n", usr.Email)
	cl.printf("   Role: %s\n", usr.Role)
	cl.printf("   Creado: %s\n", formatDateTime(usr.CreatedAt))
	cl.printf("\n💎 Suscripción:\n")
	cl.printf("   Plan: %s\n", sub.Plan)
	cl.printf("   Estado: %s\n", sub.Status)
	cl.printf("   Vence: %s\n", formatDateTime(sub.CurrentPeriodEnd))
	cl.printf("%s\n", separator)
	cl.printf("🎉 Seed completado!\n\n")
	return nil
}

func (cl *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cl.out, format, args...)
}

func formatDateTime(t time.Time) string {
	return t.Local().Format(dateTimeLayout)
}
