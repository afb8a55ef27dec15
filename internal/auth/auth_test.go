package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJWTSignVerify(t *testing.T) {
	j := NewJWT("test-secret")

	tok, err := j.Sign(42)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	id, err := j.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Errorf("Verify returned %d, want 42", id)
	}

	refresh, err := j.SignRefresh(42)
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	if id, err := j.Verify(refresh); err != nil || id != 42 {
		t.Errorf("Verify(refresh) = %d, %v", id, err)
	}
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewJWT("secret-a").Sign(7)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := NewJWT("secret-b").Verify(tok); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	j := NewJWT("test-secret")
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := j.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted", tok)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if !ComparePassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if ComparePassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

// Bad credentials are rejected before the account lookup, so these cases
// need no database.
func TestRequireAuthRejectsBadCredentials(t *testing.T) {
	mw := RequireAuth(NewJWT("test-secret"), nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without valid credentials")
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestUserHelpers(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Role: RoleUser}
	if u.FullName() != "Ada Lovelace" {
		t.Errorf("FullName = %q", u.FullName())
	}
	if u.IsAdmin() {
		t.Error("USER role reported as admin")
	}
	u.Role = RoleAdmin
	if !u.IsAdmin() {
		t.Error("ADMIN role not reported as admin")
	}
}
