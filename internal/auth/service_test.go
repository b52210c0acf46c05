package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftline/shiftline-backend/internal/memberships"
	pkgauth "github.com/shiftline/shiftline-backend/pkg/auth"
	"github.com/shiftline/shiftline-backend/pkg/auth/session"
	"github.com/shiftline/shiftline-backend/pkg/config"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
	"github.com/shiftline/shiftline-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "shiftline",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hashed
}

type fakeUserRepo struct {
	user      *models.User
	lastLogin time.Time
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user == nil || !strings.EqualFold(f.user.Email, email) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.lastLogin = at
	return nil
}

type fakeMembershipsRepo struct {
	rows []memberships.MembershipWithRestaurant
}

func (f *fakeMembershipsRepo) ListUserRestaurants(context.Context, uuid.UUID) ([]memberships.MembershipWithRestaurant, error) {
	return f.rows, nil
}

type fakeSessionManager struct {
	generated  []string
	revoked    []string
	rotateErr  error
	lastOldID  string
	lastSecret string
}

func (f *fakeSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	f.generated = append(f.generated, accessID)
	return "refresh-" + accessID, nil
}

func (f *fakeSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateErr != nil {
		return "", "", f.rotateErr
	}
	f.lastOldID = oldAccessID
	f.lastSecret = provided
	newID := session.NewAccessID()
	return newID, "refresh-" + newID, nil
}

func (f *fakeSessionManager) Revoke(_ context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

func buildTestService(t *testing.T, user *models.User, rows []memberships.MembershipWithRestaurant) (Service, *fakeSessionManager) {
	t.Helper()
	sessions := &fakeSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:        &fakeUserRepo{user: user},
		MembershipsRepo: &fakeMembershipsRepo{rows: rows},
		SessionManager:  sessions,
		JWTConfig:       testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func activeMembership(userID uuid.UUID, name string, role enums.MemberRole) memberships.MembershipWithRestaurant {
	return memberships.MembershipWithRestaurant{
		MembershipID:   uuid.New(),
		RestaurantID:   uuid.New(),
		UserID:         userID,
		RestaurantName: name,
		Role:           role,
		Status:         enums.MembershipStatusActive,
	}
}

func TestServiceLogin(t *testing.T) {
	password := "staff-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Sam",
		LastName:     "Lee",
		IsActive:     true,
	}
	membership := activeMembership(user.ID, "North Kitchen", enums.MemberRoleStaff)
	svc, sessions := buildTestService(t, user, []memberships.MembershipWithRestaurant{membership})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Staff@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.MemberRoleStaff {
		t.Fatalf("expected staff role claim, got %s", claims.Role)
	}
	if claims.ActiveRestaurantID == nil || *claims.ActiveRestaurantID != membership.RestaurantID {
		t.Fatalf("expected active restaurant %s", membership.RestaurantID)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if len(resp.Restaurants) != 1 || resp.Restaurants[0].Name != "North Kitchen" {
		t.Fatalf("unexpected restaurants: %+v", resp.Restaurants)
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != claims.ID {
		t.Fatalf("expected refresh session keyed by jti %s", claims.ID)
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, "right"),
		IsActive:     true,
	}
	rows := []memberships.MembershipWithRestaurant{activeMembership(user.ID, "North Kitchen", enums.MemberRoleStaff)}
	svc, _ := buildTestService(t, user, rows)

	cases := []LoginRequest{
		{Email: "staff@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "right"},
		{Email: "", Password: "right"},
	}
	for _, req := range cases {
		if _, err := svc.Login(context.Background(), req); !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
			t.Fatalf("expected unauthorized for %+v, got %v", req, err)
		}
	}
}

func TestServiceLoginRequiresActiveMembership(t *testing.T) {
	password := "secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "removed@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}
	removed := activeMembership(user.ID, "Old Spot", enums.MemberRoleStaff)
	removed.Status = enums.MembershipStatusRemoved
	svc, _ := buildTestService(t, user, []memberships.MembershipWithRestaurant{removed})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	restaurant := uuid.New()
	oldJTI := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:             uuid.New(),
		ActiveRestaurantID: &restaurant,
		Role:               enums.MemberRoleManager,
		JTI:                oldJTI,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc, sessions := buildTestService(t, &models.User{}, nil)
	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh-secret",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sessions.lastOldID != oldJTI {
		t.Fatalf("expected rotation keyed by old jti %s, got %s", oldJTI, sessions.lastOldID)
	}
	if sessions.lastSecret != "refresh-secret" {
		t.Fatalf("expected provided refresh token forwarded")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID == oldJTI {
		t.Fatalf("expected a fresh jti after rotation")
	}
	if claims.Role != enums.MemberRoleManager {
		t.Fatalf("expected role carried over, got %s", claims.Role)
	}
	if claims.ActiveRestaurantID == nil || *claims.ActiveRestaurantID != restaurant {
		t.Fatalf("expected active restaurant carried over")
	}
}

func TestServiceRefreshRejectsInvalidToken(t *testing.T) {
	svc, sessions := buildTestService(t, &models.User{}, nil)
	sessions.rotateErr = session.ErrInvalidRefreshToken

	accessToken, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MemberRoleStaff,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stale",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "garbage",
		RefreshToken: "stale",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for garbage token, got %v", err)
	}
}

func TestServiceLogout(t *testing.T) {
	svc, sessions := buildTestService(t, &models.User{}, nil)

	if err := svc.Logout(context.Background(), "jti-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-123" {
		t.Fatalf("expected session revoked, got %+v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
