//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	soulnest "github.com/soulnest/client-go"
)

var (
	baseURL  string
	username string
	password string
	adminKey string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	baseURL = os.Getenv("SOULNEST_BASE_URL")
	username = os.Getenv("SOULNEST_TEST_USERNAME")
	password = os.Getenv("SOULNEST_TEST_PASSWORD")
	adminKey = os.Getenv("SOULNEST_ADMIN_API_KEY")

	if baseURL == "" {
		os.Stderr.WriteString("Skipping integration tests: SOULNEST_BASE_URL not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("API URL: " + baseURL + "\n")

	os.Exit(m.Run())
}

func newClient(t *testing.T, opts ...soulnest.Option) *soulnest.Client {
	t.Helper()

	base := []soulnest.Option{
		soulnest.WithBaseURL(baseURL),
		soulnest.WithTimeout(30 * time.Second),
	}

	client, err := soulnest.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func requireUser(t *testing.T) {
	t.Helper()
	if username == "" || password == "" {
		t.Skip("SOULNEST_TEST_USERNAME and SOULNEST_TEST_PASSWORD not set")
	}
}

func TestIntegration_PublicKey(t *testing.T) {
	client := newClient(t)

	key, err := client.PublicKey(context.Background())
	if err != nil {
		t.Fatalf("PublicKey() error = %v", err)
	}
	if key == "" {
		t.Error("PublicKey() is empty")
	}

	// Sealing must succeed against the real key
	sealed, err := client.Encrypt(context.Background(), "probe")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if sealed == "" || sealed == "probe" {
		t.Errorf("Encrypt() = %q, want ciphertext", sealed)
	}
}

func TestIntegration_Hello(t *testing.T) {
	client := newClient(t)

	greeting, err := client.Hello(context.Background())
	if err != nil {
		t.Fatalf("Hello() error = %v", err)
	}
	t.Logf("Server says: %s", greeting)
}

func TestIntegration_LLMHealth(t *testing.T) {
	client := newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	health, err := client.Sessions().WaitHealthy(ctx)
	if err != nil {
		t.Skipf("LLM service not healthy: %v", err)
	}
	if health.Status != soulnest.HealthOK {
		t.Errorf("Status = %q, want %q", health.Status, soulnest.HealthOK)
	}
}

func TestIntegration_LoginAndDiaries(t *testing.T) {
	requireUser(t)
	client := newClient(t)
	ctx := context.Background()

	resp, err := client.Users().Login(ctx, username, password)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if client.BearerToken() == "" {
		t.Fatal("BearerToken() is empty after login")
	}
	t.Logf("Logged in as %s (id %d)", resp.Username, resp.UserID)

	diary, err := client.Diaries().Create(ctx, &soulnest.DiaryInput{
		Title:   "integration",
		Content: "written by the Go integration tests",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	t.Cleanup(func() {
		if err := client.Diaries().Delete(context.Background(), diary.ID); err != nil {
			t.Logf("Delete() error = %v", err)
		}
	})

	got, err := client.Diaries().Get(ctx, diary.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Content != diary.Content {
		t.Errorf("Content = %q, want %q", got.Content, diary.Content)
	}

	diaries, err := client.Diaries().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	found := false
	for _, d := range diaries {
		if d.ID == diary.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("List() does not contain diary %d", diary.ID)
	}
}

func TestIntegration_WrongPassword(t *testing.T) {
	requireUser(t)
	client := newClient(t)

	_, err := client.Users().Login(context.Background(), username, password+"-wrong")
	if !errors.Is(err, soulnest.ErrBusiness) {
		t.Fatalf("Login() error = %v, want BUSINESS_ERROR", err)
	}
	if client.BearerToken() != "" {
		t.Error("BearerToken() set after failed login")
	}
}

func TestIntegration_AdminListUsers(t *testing.T) {
	if adminKey == "" {
		t.Skip("SOULNEST_ADMIN_API_KEY not set")
	}
	client := newClient(t, soulnest.WithAdminMode(true))
	ctx := context.Background()

	if err := client.SetAdminAPIKey(ctx, adminKey); err != nil {
		t.Fatalf("SetAdminAPIKey() error = %v", err)
	}

	users, err := client.Admin().ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	for _, u := range users {
		if u.Password != "" {
			t.Errorf("user %d has a password in the listing", u.ID)
		}
	}
}
