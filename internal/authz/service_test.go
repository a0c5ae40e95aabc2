package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc, db
}

func TestBuiltinRolesMatrix(t *testing.T) {
	svc, _ := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	cases := []struct {
		role, path, method string
		want               bool
	}{
		{"customer", "/api/cart/add", "POST", true},
		{"customer", "/api/cart/item/:productId", "delete", true},
		{"customer", "/api/orders/42/cancel", "PUT", true},
		{"customer", "/api/wishlist", "GET", true},
		{"customer", "/api/products", "POST", false},
		{"customer", "/api/artisan/dashboard/stats", "GET", false},
		{"customer", "/api/admin/reviews/3/hidden", "PUT", false},
		{"artisan", "/api/products/7", "PUT", true},
		{"artisan", "/api/artisan/orders/9/status", "PUT", true},
		{"artisan", "/api/notifications/5/read", "PUT", true},
		{"artisan", "/api/cart", "GET", false},
		{"artisan", "/api/orders", "POST", false},
		{"admin", "/api/cart", "GET", true},
		{"admin", "/api/artisan/analytics", "GET", true},
		{"admin", "/api/admin/reviews/3/hidden", "PUT", true},
		{"admin", "/api/admin/reviews/3/hidden", "DELETE", false},
		{"admin", "/api/admin/authz/roles/artisan/policies", "GET", true},
		{"artisan", "/api/admin/authz/policies", "POST", false},
		{"guest", "/api/wishlist", "GET", false},
	}
	for _, tc := range cases {
		got, err := svc.EnforceRole(tc.role, tc.path, tc.method)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.method, tc.path, err)
		}
		if got != tc.want {
			t.Errorf("%s %s %s: want %v got %v", tc.role, tc.method, tc.path, tc.want, got)
		}
	}
}

func TestBootstrapIsIdempotentAndPersisted(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	for i := 0; i < 2; i++ {
		if err := svc.BootstrapBuiltinRoles(); err != nil {
			t.Fatalf("bootstrap run %d failed: %v", i, err)
		}
	}
	policies, err := svc.GetRolePolicies("artisan")
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(policies) != 12 {
		t.Fatalf("want 12 artisan policies got %d", len(policies))
	}

	reloaded, err := NewService(db)
	if err != nil {
		t.Fatalf("reload service failed: %v", err)
	}
	allow, err := reloaded.EnforceRole("customer", "/api/orders", "POST")
	if err != nil || !allow {
		t.Fatalf("policies should survive a reload: %v %v", allow, err)
	}
	roles, err := reloaded.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := []string{"role:admin", "role:artisan", "role:customer", "role:user"}
	if strings.Join(roles, ",") != strings.Join(want, ",") {
		t.Fatalf("roles want %v got %v", want, roles)
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc, _ := setupAuthzServiceTest(t)
	added, err := svc.GrantRolePolicy("artisan", "/api/artisan/payouts", "get")
	if err != nil || !added {
		t.Fatalf("grant failed: %v %v", added, err)
	}
	if added, _ := svc.GrantRolePolicy("Artisan", "/artisan/payouts", "GET"); added {
		t.Fatalf("second grant of the same rule should report not added")
	}
	allow, _ := svc.EnforceRole("artisan", "/artisan/payouts", "GET")
	if !allow {
		t.Fatalf("expected allow after grant")
	}
	removed, err := svc.RevokeRolePolicy("artisan", "/artisan/payouts", "GET")
	if err != nil || !removed {
		t.Fatalf("revoke failed: %v %v", removed, err)
	}
	if removed, _ := svc.RevokeRolePolicy("artisan", "/artisan/payouts", "GET"); removed {
		t.Fatalf("revoking a missing rule should report not removed")
	}
	allow, _ = svc.EnforceRole("artisan", "/artisan/payouts", "GET")
	if allow {
		t.Fatalf("expected deny after revoke")
	}
	if _, err := svc.GrantRolePolicy("artisan", "/x", " "); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("empty action should be rejected, got %v", err)
	}
	if err := svc.InheritRole("admin", "role:admin"); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("self inheritance should be rejected, got %v", err)
	}
}

func TestNilServiceIsUnavailable(t *testing.T) {
	var svc *Service
	if _, err := svc.EnforceRole("admin", "/cart", "GET"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable got %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable got %v", err)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/orders/:id", want: "/orders/:id"},
		{in: "/orders/:id", want: "/orders/:id"},
		{in: "cart", want: "/cart"},
		{in: "/api", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole(" Artisan ")
	if err != nil || got != "role:artisan" {
		t.Fatalf("want role:artisan got %q %v", got, err)
	}
	for _, bad := range []string{"role:", "", "9lives", "admin;drop"} {
		if _, err := NormalizeRole(bad); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("%q should be rejected, got %v", bad, err)
		}
	}
	if got, _ := NormalizeRole("role:Shop Owner"); got != "role:shop_owner" {
		t.Fatalf("want role:shop_owner got %q", got)
	}
}
