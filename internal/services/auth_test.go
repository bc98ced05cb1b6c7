package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/requestdata"
	"github.com/thetarnished/academy-backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	as := te.authService()

	user, err := as.Register(ctx, RegisterInput{
		Email:     "Ada@Example.com",
		Password:  "hunter22",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != types.RoleStudent {
		t.Fatalf("default role = %q, want student", user.Role)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatalf("password stored in clear")
	}

	logged, token, err := as.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned wrong user")
	}
	if token == "" {
		t.Fatalf("empty access token")
	}

	authedCtx, err := as.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID || rd.Role != types.RoleStudent {
		t.Fatalf("request data = %+v, want user %s", rd, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	as := te.authService()

	if _, err := as.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := as.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret2"})
	if apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("duplicate email: status = %d, want 409", apierr.StatusOf(err))
	}
}

func TestRegisterProfessorCreatesProfile(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	user, err := te.authService().Register(ctx, RegisterInput{
		Email:          "prof@example.com",
		Password:       "secret1",
		Role:           types.RoleProfessor,
		Bio:            "numbers person",
		Specialization: "mathematics",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	professor, err := te.professorRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("load professor: %v", err)
	}
	if professor == nil {
		t.Fatalf("professor row not created")
	}
	if professor.Specialization != "mathematics" {
		t.Fatalf("specialization = %q", professor.Specialization)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.authService().Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "secret1",
		Role:     "superuser",
	})
	if apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("unknown role: status = %d, want 400", apierr.StatusOf(err))
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	as := te.authService()

	if _, err := as.Register(ctx, RegisterInput{Email: "a@example.com", Password: "correct-pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "correct-pw"},
		{"wrong password", "a@example.com", "wrong-pw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := as.Login(ctx, tc.email, tc.password)
			if apierr.StatusOf(err) != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", apierr.StatusOf(err))
			}
			// Both failures read the same on the wire.
			if !strings.Contains(err.Error(), "invalid email or password") {
				t.Fatalf("distinguishable failure message: %q", err.Error())
			}
		})
	}
}

func TestLoginBannedThenUnbanned(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	as := te.authService()
	admin := te.adminService()

	user, err := as.Register(ctx, RegisterInput{Email: "banned@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	reason := "policy violation"
	if _, err := admin.SetBanned(ctx, AccountStudent, user.ID, true, &reason); err != nil {
		t.Fatalf("ban: %v", err)
	}

	_, _, err = as.Login(ctx, "banned@example.com", "secret1")
	if apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("banned login: status = %d, want 403", apierr.StatusOf(err))
	}
	if !strings.Contains(err.Error(), reason) {
		t.Fatalf("ban reason not surfaced: %q", err.Error())
	}

	// Wrong password on a banned account must stay a 401, not leak the ban.
	_, _, err = as.Login(ctx, "banned@example.com", "wrong-pw")
	if apierr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("banned + wrong password: status = %d, want 401", apierr.StatusOf(err))
	}

	if _, err := admin.SetBanned(ctx, AccountStudent, user.ID, false, nil); err != nil {
		t.Fatalf("unban: %v", err)
	}
	if _, _, err := as.Login(ctx, "banned@example.com", "secret1"); err != nil {
		t.Fatalf("login after unban: %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.authService().SetContextFromToken(context.Background(), "not-a-jwt")
	if apierr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", apierr.StatusOf(err))
	}
}
