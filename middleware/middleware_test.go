package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"craftedbyher/auth"
	"craftedbyher/metrics"
	"craftedbyher/models"
	"craftedbyher/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]*auth.Identity

func (s stubVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, auth.ErrInvalidToken
}

type stubAccounts struct {
	roles     map[string]string
	suspended map[string]bool
	err       error
}

func (s stubAccounts) Resolve(_ context.Context, id *auth.Identity) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	role := s.roles[id.UID]
	if role == "" {
		role = models.RoleBuyer
	}
	return &models.User{UID: id.UID, Email: id.Email, Role: role, Suspended: s.suspended[id.UID]}, nil
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc": "abc",
		"bearer abc": "abc",
		"abc":        "abc",
		"":           "",
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", header)
		if got := BearerToken(c); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestFirebaseAuthAndRoles(t *testing.T) {
	verifier := stubVerifier{
		"buyer-token":  {UID: "b1"},
		"seller-token": {UID: "s1"},
		"admin-token":  {UID: "a1"},
	}
	accounts := stubAccounts{roles: map[string]string{"s1": models.RoleSeller, "a1": models.RoleAdmin}}

	r := gin.New()
	api := r.Group("/", FirebaseAuth(verifier, accounts))
	api.GET("/me", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, u.UID+":"+c.GetString(RoleKey))
	})
	api.GET("/seller", RequireRole(models.RoleSeller), func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/admin", AdminMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		path, token string
		want        int
		body        string
	}{
		{"/me", "", http.StatusUnauthorized, ""},
		{"/me", "forged", http.StatusUnauthorized, ""},
		{"/me", "buyer-token", http.StatusOK, "b1:buyer"},
		{"/seller", "buyer-token", http.StatusForbidden, ""},
		{"/seller", "seller-token", http.StatusOK, ""},
		{"/seller", "admin-token", http.StatusOK, ""},
		{"/admin", "seller-token", http.StatusForbidden, ""},
		{"/admin", "admin-token", http.StatusOK, ""},
	}
	for _, tc := range cases {
		w := serve(r, http.MethodGet, tc.path, tc.token)
		if w.Code != tc.want {
			t.Errorf("%s with %q = %d, want %d", tc.path, tc.token, w.Code, tc.want)
		}
		if tc.body != "" && w.Body.String() != tc.body {
			t.Errorf("%s body = %q, want %q", tc.path, w.Body.String(), tc.body)
		}
	}
}

func TestFirebaseAuthAccountFailure(t *testing.T) {
	r := gin.New()
	r.GET("/", FirebaseAuth(stubVerifier{"t": {UID: "u"}}, stubAccounts{err: errors.New("mongo down")}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	if w := serve(r, http.MethodGet, "/", "t"); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestFirebaseAuthRefusesSuspended(t *testing.T) {
	r := gin.New()
	accounts := stubAccounts{suspended: map[string]bool{"gone": true}}
	r.GET("/", FirebaseAuth(stubVerifier{"t": {UID: "gone"}, "ok": {UID: "b1"}}, accounts), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	if w := serve(r, http.MethodGet, "/", "t"); w.Code != http.StatusForbidden {
		t.Errorf("suspended status = %d, want 403", w.Code)
	}
	if w := serve(r, http.MethodGet, "/", "ok"); w.Code != http.StatusOK {
		t.Errorf("active status = %d, want 200", w.Code)
	}
}

type stubManagers struct {
	claims *auth.ManagerClaims
	err    error
}

func (s stubManagers) Authenticate(context.Context, string) (*auth.ManagerClaims, error) {
	return s.claims, s.err
}

func TestHubManagerAuth(t *testing.T) {
	handler := func(c *gin.Context) {
		m, ok := CurrentManager(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, m.ManagerID+"@"+m.HubID)
	}
	claims := &auth.ManagerClaims{ManagerID: "HM0001", HubID: "HUB0001"}

	cases := []struct {
		name  string
		stub  stubManagers
		token string
		want  int
	}{
		{"no token", stubManagers{claims: claims}, "", http.StatusUnauthorized},
		{"valid", stubManagers{claims: claims}, "tok", http.StatusOK},
		{"store down", stubManagers{err: errors.New("mongo down")}, "tok", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", HubManagerAuth(tc.stub), handler)
			w := serve(r, http.MethodGet, "/", tc.token)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
			if tc.want == http.StatusOK && w.Body.String() != "HM0001@HUB0001" {
				t.Errorf("body = %q", w.Body.String())
			}
		})
	}
}

func TestHubManagerAuthWithIssuer(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(&models.HubManager{ManagerID: "HM0007", HubID: models.AllHubs})
	if err != nil {
		t.Fatal(err)
	}
	revoked := blacklist{}
	svc := services.NewManagerService(nil, nil, revoked, issuer)

	r := gin.New()
	r.GET("/", HubManagerAuth(svc), func(c *gin.Context) {
		m, _ := CurrentManager(c)
		c.String(http.StatusOK, m.ManagerID)
	})
	if w := serve(r, http.MethodGet, "/", token); w.Code != http.StatusOK || w.Body.String() != "HM0007" {
		t.Errorf("valid token = %d %q", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/", token+"x"); w.Code != http.StatusUnauthorized {
		t.Errorf("tampered token = %d, want 401", w.Code)
	}

	revoked[token] = true
	w := serve(r, http.MethodGet, "/", token)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "blacklisted") {
		t.Errorf("revoked token = %d %s", w.Code, w.Body.String())
	}
}

type blacklist map[string]bool

func (b blacklist) Add(_ context.Context, token string, _ time.Time) error {
	b[token] = true
	return nil
}

func (b blacklist) Contains(_ context.Context, token string) (bool, error) {
	return b[token], nil
}

func TestRequestLoggerSetsID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(), Metrics())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/ping/1", "")
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping/2", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "fixed-id" {
		t.Errorf("request id = %q, want propagated", got)
	}

	if n := testutil.CollectAndCount(metrics.HTTPDuration, "craftedbyher_http_request_duration_seconds"); n == 0 {
		t.Error("no latency observed")
	}
}
