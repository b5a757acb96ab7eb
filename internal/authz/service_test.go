package authz

import "testing"

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService()
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	cases := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{"customer", "/api/v1/cart", "GET", true},
		{"customer", "/api/v1/cart/items", "post", true},
		{"customer", "/api/v1/cart/items/42", "PUT", true},
		{"customer", "/api/v1/orders", "POST", true},
		{"customer", "/api/v1/me", "GET", true},
		{"customer", "/api/v1/notifications", "GET", true},
		{"customer", "/api/v1/admin/orders", "GET", false},
		{"customer", "/api/v1/admin/products/1", "DELETE", false},
		{"admin", "/api/v1/admin/orders/order_1/status", "PATCH", true},
		{"admin", "/api/v1/admin/products", "POST", true},
		{"admin", "/api/v1/me", "GET", true},
		{"admin", "/api/v1/cart", "GET", false},
		{"admin", "/api/v1/orders", "POST", false},
	}
	for _, tc := range cases {
		got, err := svc.EnforceRole(tc.role, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.action, tc.object, err)
		}
		if got != tc.want {
			t.Fatalf("enforce %s %s %s: want %v got %v", tc.role, tc.action, tc.object, tc.want, got)
		}
	}
}

func TestEnforceRoleRejectsEmptyRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.EnforceRole("  ", "/api/v1/cart", "GET"); err == nil {
		t.Fatalf("expected error for empty role")
	}
}

func TestGetRolePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	policies, err := svc.GetRolePolicies("admin")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/*" || policies[0].Action != "*" {
		t.Fatalf("unexpected admin policies: %+v", policies)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"":                   "/",
		"/api/v1":            "/",
		"/api/v1/cart":       "/cart",
		"admin/orders":       "/admin/orders",
		" /api/v1/orders/1 ": "/orders/1",
	}
	for input, want := range cases {
		if got := NormalizeObject(input); got != want {
			t.Fatalf("NormalizeObject(%q): want %q got %q", input, want, got)
		}
	}
}
