package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	intakehttp "github.com/aussiebroadwan/intake/internal/intake/http"
	"github.com/aussiebroadwan/intake/internal/intake/metrics"
	"github.com/aussiebroadwan/intake/internal/intake/notify"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/sqlite"
	"github.com/aussiebroadwan/intake/pkg/cryptox"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/jwtx"
	"github.com/aussiebroadwan/intake/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const issuer = "http://intake.test"

type linkMailer struct {
	mu    sync.Mutex
	links map[string]string
}

func (m *linkMailer) SendConfirmation(_ context.Context, email, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[email] = link
	return nil
}

func (m *linkMailer) token(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := url.Parse(m.links[email])
	require.NoError(t, err)
	return u.Query().Get("token")
}

type welcomeRecorder struct {
	mu    sync.Mutex
	calls [][2]string
	err   error
}

func (n *welcomeRecorder) NotifyWelcome(_ context.Context, email, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, [2]string{email, name})
	return n.err
}

func (n *welcomeRecorder) setErr(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

func (n *welcomeRecorder) Calls() [][2]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][2]string(nil), n.calls...)
}

type harness struct {
	srv     *httptest.Server
	mailer  *linkMailer
	welcome *welcomeRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	raw, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	key, err := cryptox.ParseEd25519Key(raw)
	require.NoError(t, err)
	signer, err := jwtx.NewSigner("k1", key)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	hasher := cryptox.NewHasher("pepper")
	hasher.Params = cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

	h := &harness{
		mailer:  &linkMailer{links: map[string]string{}},
		welcome: &welcomeRecorder{},
	}

	dispatcher := notify.NewDispatcher(h.welcome)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = dispatcher.Wait(ctx)
	})

	intake := &service.IntakeService{Store: st, Dispatcher: dispatcher}
	t.Cleanup(intake.Close)

	router := intakehttp.NewRouter(keys, "test", st, slogx.Discard())
	router.AuthService = &service.AuthService{
		Store:    st,
		Hasher:   hasher,
		Signer:   signer,
		Verifier: jwtx.NewVerifier(keys, issuer),
		Mailer:   h.mailer,
		Issuer:   issuer,
		BaseURL:  issuer,
	}
	router.IntakeService = intake
	router.Notifier = h.welcome
	router.Metrics = metrics.New()
	router.ApplyRoutes()

	h.srv = httptest.NewServer(router)
	t.Cleanup(h.srv.Close)
	return h
}

// signedIn returns a client holding a session for a freshly confirmed operator.
func (h *harness) signedIn(t *testing.T, email string) *intakesdk.SDKClient {
	t.Helper()
	ctx := context.Background()
	client := intakesdk.NewSDKClient(h.srv.URL)

	require.NoError(t, client.SignUp(ctx, intakesdk.SignUpRequest{
		Email: email, Password: "secret1", ConfirmPassword: "secret1",
	}))
	_, err := client.Confirm(ctx, h.mailer.token(t, email))
	require.NoError(t, err)
	_, err = client.SignIn(ctx, email, "secret1")
	require.NoError(t, err)
	return client
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *intakesdk.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestGateWithoutSession(t *testing.T) {
	h := newHarness(t)
	client := intakesdk.NewSDKClient(h.srv.URL)
	ctx := context.Background()

	for path, want := range map[string]string{
		"/":          "/signin",
		"/dashboard": "/signin",
	} {
		view, target, err := client.View(ctx, path)
		require.NoError(t, err)
		require.Nil(t, view)
		require.Equal(t, want, target, path)
	}

	view, target, err := client.View(ctx, "/signup")
	require.NoError(t, err)
	require.Empty(t, target)
	require.Equal(t, "signup", view.View)

	_, err = client.ListClients(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, intakesdk.ErrorCodeUnauthorized)

	_, err = client.SendEmail(ctx, "jane@acme.com", "Jane Doe")
	requireAPIError(t, err, http.StatusUnauthorized, intakesdk.ErrorCodeUnauthorized)
}

func TestGateWithSession(t *testing.T) {
	h := newHarness(t)
	client := h.signedIn(t, "op@firm.com")
	ctx := context.Background()

	for path, want := range map[string]string{
		"/":       "/dashboard",
		"/signin": "/dashboard",
		"/signup": "/dashboard",
	} {
		_, target, err := client.View(ctx, path)
		require.NoError(t, err)
		require.Equal(t, want, target, path)
	}

	view, target, err := client.View(ctx, "/dashboard")
	require.NoError(t, err)
	require.Empty(t, target)
	require.Equal(t, "dashboard", view.View)
	require.Equal(t, "op@firm.com", view.Email)
	require.NotNil(t, view.Form)
	require.Equal(t, "idle", view.Form.State)
}

func TestSignUpErrors(t *testing.T) {
	h := newHarness(t)
	client := intakesdk.NewSDKClient(h.srv.URL)
	ctx := context.Background()

	err := client.SignUp(ctx, intakesdk.SignUpRequest{Email: "op@firm.com", Password: "secret1", ConfirmPassword: "secret2"})
	requireAPIError(t, err, http.StatusBadRequest, intakesdk.ErrorCodeInvalidRequest)
	require.Contains(t, err.Error(), "Passwords do not match")

	require.NoError(t, client.SignUp(ctx, intakesdk.SignUpRequest{Email: "op@firm.com", Password: "secret1", ConfirmPassword: "secret1"}))

	_, err = client.SignIn(ctx, "op@firm.com", "secret1")
	requireAPIError(t, err, http.StatusForbidden, intakesdk.ErrorCodeForbidden)

	err = client.SignUp(ctx, intakesdk.SignUpRequest{Email: "op@firm.com", Password: "secret1", ConfirmPassword: "secret1"})
	requireAPIError(t, err, http.StatusConflict, intakesdk.ErrorCodeConflict)

	_, err = client.Confirm(ctx, "bogus")
	requireAPIError(t, err, http.StatusBadRequest, intakesdk.ErrorCodeInvalidRequest)
}

func TestSessionAndSignOut(t *testing.T) {
	h := newHarness(t)
	client := h.signedIn(t, "op@firm.com")
	ctx := context.Background()

	sess, err := client.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, "op@firm.com", sess.Email)

	require.NoError(t, client.SignOut(ctx))

	_, err = client.Session(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, intakesdk.ErrorCodeUnauthorized)
}

func TestBearerTokenIsAccepted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	client := intakesdk.NewSDKClient(h.srv.URL)

	require.NoError(t, client.SignUp(ctx, intakesdk.SignUpRequest{Email: "op@firm.com", Password: "secret1", ConfirmPassword: "secret1"}))
	_, err := client.Confirm(ctx, h.mailer.token(t, "op@firm.com"))
	require.NoError(t, err)
	sess, err := client.SignIn(ctx, "op@firm.com", "secret1")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, h.srv.URL+"/api/clients", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignedOutBearerTokenIsRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	client := intakesdk.NewSDKClient(h.srv.URL)

	require.NoError(t, client.SignUp(ctx, intakesdk.SignUpRequest{Email: "op@firm.com", Password: "secret1", ConfirmPassword: "secret1"}))
	_, err := client.Confirm(ctx, h.mailer.token(t, "op@firm.com"))
	require.NoError(t, err)
	sess, err := client.SignIn(ctx, "op@firm.com", "secret1")
	require.NoError(t, err)

	bearerGet := func() int {
		req, err := http.NewRequest(http.MethodGet, h.srv.URL+"/api/clients/form", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, bearerGet())

	require.NoError(t, client.SignOut(ctx))
	require.Equal(t, http.StatusUnauthorized, bearerGet())
}

func TestSubmitClientFlow(t *testing.T) {
	h := newHarness(t)
	client := h.signedIn(t, "op@firm.com")
	ctx := context.Background()

	res, err := client.SubmitClient(ctx, intakesdk.ClientDraft{Name: "Jane Doe", Email: "jane@acme.com", BusinessName: "Acme"})
	require.NoError(t, err)
	require.Equal(t, intakesdk.OutcomeCreated, res.Outcome)
	require.True(t, res.Form.BannerVisible)
	require.Equal(t, intakesdk.ClientDraft{}, res.Form.Draft)
	require.Len(t, res.Form.Clients, 1)

	require.Eventually(t, func() bool {
		return len(h.welcome.Calls()) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, [2]string{"jane@acme.com", "Jane Doe"}, h.welcome.Calls()[0])

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, ready.Checks.Clients)

	dup := intakesdk.ClientDraft{Name: "Janet Smith", Email: "jane@acme.com", BusinessName: "Smith Co"}
	res, err = client.SubmitClient(ctx, dup)
	require.NoError(t, err)
	require.Equal(t, intakesdk.OutcomeConflict, res.Outcome)
	require.Equal(t, map[string]string{"email": service.MsgEmailExists}, res.Form.Errors)
	require.Equal(t, dup, res.Form.Draft)

	res, err = client.SubmitClient(ctx, intakesdk.ClientDraft{})
	require.NoError(t, err)
	require.Equal(t, intakesdk.OutcomeRejected, res.Outcome)
	require.Len(t, res.Form.Errors, 3)

	list, err := client.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Another operator sees the client but not this form.
	other := h.signedIn(t, "other@firm.com")
	form, err := other.Form(ctx)
	require.NoError(t, err)
	require.Empty(t, form.Errors)
	require.Len(t, form.Clients, 1)
}

func TestSendEmail(t *testing.T) {
	h := newHarness(t)
	client := h.signedIn(t, "op@firm.com")
	ctx := context.Background()

	res, err := client.SendEmail(ctx, "jane@acme.com", "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, intakesdk.SendEmailStatusSuccess, res.Status)

	h.welcome.setErr(errors.New("provider rejected message"))
	res, err = client.SendEmail(ctx, "jane@acme.com", "Jane Doe")
	requireAPIError(t, err, http.StatusInternalServerError, intakesdk.ErrorCodeServerError)
	require.Equal(t, intakesdk.SendEmailStatusError, res.Status)
	require.Contains(t, res.Error, "provider rejected message")
}

func TestSendEmailMalformedBody(t *testing.T) {
	h := newHarness(t)
	client := h.signedIn(t, "op@firm.com")

	req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/api/send-email", strings.NewReader("{not json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), `"status":"error"`)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)
	client := intakesdk.NewSDKClient(h.srv.URL)
	ctx := context.Background()

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Zero(t, ready.Checks.Clients)

	resp, err := http.Get(h.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "go_goroutines")
}

func TestSendEmailBlankRecipient(t *testing.T) {
	h := &intakehttp.SendEmailHandler{Notifier: notify.NewNotifier(notify.LogSender{}, "Intake <welcome@intake.test>")}

	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(`{"email":"  ","name":"Jane Doe"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"status":"error","error":"notify: recipient is required"}`, rec.Body.String())
}
