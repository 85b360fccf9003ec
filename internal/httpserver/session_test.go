package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testSessions() *sessions {
	return &sessions{secret: []byte("k"), cookie: "clue_session", ttl: time.Hour}
}

func TestSessionSignParse(t *testing.T) {
	s := testSessions()
	sid := uuid.NewString()
	tok, exp, err := s.sign(sid, time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry in the past: %v", exp)
	}
	got, err := s.parse(tok)
	if err != nil || got != sid {
		t.Fatalf("parse = %q, %v", got, err)
	}
}

func TestSessionRejectsBadTokens(t *testing.T) {
	s := testSessions()
	sid := uuid.NewString()

	expired, _, _ := s.sign(sid, time.Now().Add(-2*time.Hour))
	other := &sessions{secret: []byte("other"), ttl: time.Hour}
	foreign, _, _ := other.sign(sid, time.Now())
	notUUID, _, _ := s.sign("not-a-uuid", time.Now())
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{SID: sid}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"garbage":   "abc.def.ghi",
		"expired":   expired,
		"wrong key": foreign,
		"bad sid":   notUUID,
		"alg none":  none,
		"empty":     "",
	} {
		if _, err := s.parse(tok); err == nil {
			t.Errorf("%s: parse accepted token", name)
		}
	}
}

func TestEnsureIssuesAndReusesSession(t *testing.T) {
	s := testSessions()

	rec := httptest.NewRecorder()
	sid := s.ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "clue_session" || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}
	if cookies[0].SameSite != http.SameSiteLaxMode || cookies[0].Secure {
		t.Errorf("development cookie attributes = %+v", cookies[0])
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	if again := s.ensure(rec, req); again != sid {
		t.Errorf("cookie session = %q, want %q", again, sid)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("valid session should not be reissued")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+cookies[0].Value)
	if again := s.ensure(httptest.NewRecorder(), req); again != sid {
		t.Errorf("bearer session = %q, want %q", again, sid)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "clue_session", Value: "forged"})
	if fresh := s.ensure(httptest.NewRecorder(), req); fresh == sid {
		t.Error("forged cookie reused the session")
	}
}

func TestProductionCookie(t *testing.T) {
	s := testSessions()
	s.secure = true
	rec := httptest.NewRecorder()
	s.ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := rec.Result().Cookies()[0]
	if !c.Secure || c.SameSite != http.SameSiteNoneMode {
		t.Errorf("production cookie attributes = %+v", c)
	}
}
