package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"fincast/internal/config"
	"fincast/internal/services/storage"
	"fincast/internal/testutil"
)

// setupTestServer wires the application against a temporary data directory
// and returns a test server. backendURL empty runs offline.
func setupTestServer(t *testing.T, backendURL string) *testutil.TestServer {
	t.Helper()

	testutil.SetTestEnv(t)
	t.Setenv("FINCAST_DATA_DIR", t.TempDir())
	t.Setenv("FINCAST_BACKEND_URL", backendURL)

	cfg, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.Open(cfg.DataDirectory)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}

	a, err := newApp(cfg, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to set up app: %v", err)
	}
	return testutil.NewTestServer(t, a.router)
}

// TestHealthEndpoint tests the /api/health endpoint
func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t, "")

	resp := ts.GET("/api/health")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		Contains(`"status":"ok"`).
		Contains(`"offline":true`)
}

func TestVersionEndpoint(t *testing.T) {
	ts := setupTestServer(t, "")

	resp := ts.GET("/api/version")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		Contains(`"version":"dev"`)
}

// TestRootRedirect tests that / redirects to /dashboard
func TestRootRedirect(t *testing.T) {
	ts := setupTestServer(t, "")

	// Don't follow redirects
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.BaseURL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Errorf("Expected status %d, got %d", http.StatusTemporaryRedirect, resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %s", loc)
	}
}

func TestStaticAssets(t *testing.T) {
	ts := setupTestServer(t, "")

	testutil.AssertResponse(t, ts.GET("/static/js/dashboard.js")).
		StatusOK().
		Contains("Plotly.react").
		Contains("htmx:responseError", "showResult(text)")
	testutil.AssertResponse(t, ts.GET("/static/css/styles.css")).
		StatusOK().
		Contains(".expense-warning-high")
}

func TestPages(t *testing.T) {
	tests := []struct {
		path     string
		title    string
		elements []string
	}{
		{"/dashboard", "Dashboard", []string{"prediction-result", "pie-expenses", "sample-status", "sample-profile"}},
		{"/input", "Your Profile", []string{"prediction-result-alt", "city-select-alt", "run-meta"}},
	}

	ts := setupTestServer(t, "")
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ra := testutil.AssertResponse(t, ts.GET(tt.path)).
				StatusOK().
				ContentTypeHTML().
				Contains("<title>" + tt.title)
			for _, id := range tt.elements {
				ra.HasElement(id)
			}
		})
	}
}

func TestOfflineSnapshot(t *testing.T) {
	ts := setupTestServer(t, "")
	page := ts.OpenPage("/dashboard")

	testutil.AssertResponse(t, ts.GET("/pages/"+page+"/snapshot")).
		StatusOK().
		Contains("Updated just now").
		Contains("Sample Data: Income ₹60,000 • Age 30 • Dependents 1 • Tier 2").
		Contains("Savings rate fixed at 15%.").
		SwapsOOB("scatter-income-expenses").
		SwapsOOB("prediction-form-Disposable_Income").
		Contains(`value="35000"`)
}

func TestOfflinePredictReportsUnconfigured(t *testing.T) {
	ts := setupTestServer(t, "")
	page := ts.OpenPage("/dashboard")

	resp := ts.POSTForm("/pages/"+page+"/forms/prediction-form/predict", url.Values{"Income": {"60000"}}, nil)
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`<p class="muted">prediction backend is not configured</p>`)
}

func TestBackendPrediction(t *testing.T) {
	var got map[string]interface{}
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/sample-dashboard":
			_, _ = w.Write([]byte(`{"insights":["from backend"],"sample_profile":{"Income":80000,"City_Tier":"Tier 1"}}`))
		case "/api/run-notebook":
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"predicted_desired_savings":20000,"overspend_probability":0.5,"elapsed_ms":120}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backendSrv.Close)

	ts := setupTestServer(t, backendSrv.URL)
	page := ts.OpenPage("/input")

	testutil.AssertResponse(t, ts.GET("/pages/"+page+"/snapshot")).
		StatusOK().
		Contains("from backend").
		Contains("Sample Data: Income ₹80,000 • Tier 1")

	resp := ts.POSTForm("/pages/"+page+"/forms/input-form/predict", url.Values{"Income": {"80000"}, "Age": {"41"}}, nil)
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains("<strong>₹20,000</strong> per month").
		Contains("Overspend probability: <strong>50.0%</strong>").
		Contains("Notebook runtime: 120 ms")

	if got["Age"] != 41.0 {
		t.Errorf("Expected Age 41 in payload, got %v", got["Age"])
	}
}

func TestEncryptedDataDirectory(t *testing.T) {
	testutil.SetTestEnv(t)
	dir := t.TempDir()
	t.Setenv("FINCAST_DATA_DIR", dir)

	cfg, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	store, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}

	// Write the sample, then encrypt it
	if _, err := newApp(cfg, store, zerolog.Nop()); err != nil {
		t.Fatalf("Failed to set up app: %v", err)
	}
	if err := store.EnableEncryption("correct horse"); err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}

	reopened, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	t.Setenv(PasswordEnv, "correct horse")
	if err := unlock(reopened); err != nil {
		t.Fatalf("Failed to unlock: %v", err)
	}

	a, err := newApp(cfg, reopened, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to set up app: %v", err)
	}
	ts := testutil.NewTestServer(t, a.router)
	page := ts.OpenPage("/dashboard")

	testutil.AssertResponse(t, ts.GET("/pages/"+page+"/snapshot")).
		StatusOK().
		Contains("Updated just now")
}

func TestOpenDataDirOnlyUnlocksOffline(t *testing.T) {
	testutil.SetTestEnv(t)
	dir := t.TempDir()
	t.Setenv("FINCAST_DATA_DIR", dir)

	store, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	if err := store.EnableEncryption("correct horse"); err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	t.Setenv(PasswordEnv, "wrong password")

	// Online: the encrypted directory is never opened
	t.Setenv("FINCAST_BACKEND_URL", "http://127.0.0.1:1")
	cfg, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	online, err := openDataDir(cfg)
	if err != nil {
		t.Fatalf("Expected no unlock with a backend configured, got %v", err)
	}
	if online != nil {
		t.Error("Expected no data directory with a backend configured")
	}
	if _, err := newApp(cfg, online, zerolog.Nop()); err != nil {
		t.Fatalf("Failed to set up app: %v", err)
	}

	// Offline: the wrong password is rejected
	t.Setenv("FINCAST_BACKEND_URL", "")
	cfg, err = config.Load("", "")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if _, err := openDataDir(cfg); err == nil {
		t.Error("Expected unlock to fail offline with the wrong password")
	}

	t.Setenv(PasswordEnv, "correct horse")
	offline, err := openDataDir(cfg)
	if err != nil {
		t.Fatalf("Failed to unlock offline: %v", err)
	}
	if offline == nil || !offline.IsUnlocked() {
		t.Error("Expected an unlocked data directory offline")
	}
}
