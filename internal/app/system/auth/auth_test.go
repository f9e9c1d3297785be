package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")
	userID := primitive.NewObjectID()

	token, err := v.GenerateToken(userID, []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := v.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != userID.Hex() {
		t.Errorf("UserID: got %q, want %q", claims.UserID, userID.Hex())
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Errorf("Roles: got %v, want [admin]", claims.Roles)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewVerifier("secret-a").GenerateToken(primitive.NewObjectID(), nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := NewVerifier("secret-b").ValidateToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	v := NewVerifier("test-secret")
	token, err := v.GenerateToken(primitive.NewObjectID(), nil, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := v.ValidateToken(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestRequireAuth(t *testing.T) {
	v := NewVerifier("test-secret")
	userID := primitive.NewObjectID()

	var gotID primitive.ObjectID
	var gotOK bool
	handler := v.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = CurrentUserID(r)
	}))

	// Missing header
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want 401", rec.Code)
	}

	// Valid token
	token, err := v.GenerateToken(userID, nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want 200", rec.Code)
	}
	if !gotOK || gotID != userID {
		t.Errorf("CurrentUserID: got (%v, %v), want (%v, true)", gotID, gotOK, userID)
	}
}

func TestHasRole(t *testing.T) {
	req := WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), primitive.NewObjectID(), "admin")
	if !HasRole(req, "admin") {
		t.Error("expected admin role to be present")
	}
	if HasRole(req, "corporate_mod") {
		t.Error("did not expect corporate_mod role")
	}
}
