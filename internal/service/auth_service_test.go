package service

import (
	"alcyxob/fitness-planner/internal/apperr"
	"alcyxob/fitness-planner/internal/mailer"
	"alcyxob/fitness-planner/internal/repository/gormdb"
	"alcyxob/fitness-planner/internal/testutil"
	"alcyxob/fitness-planner/internal/verification"
	"context"
	"regexp"
	"sync"
	"testing"
	"time"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no mail sent")
	}
	code := codePattern.FindString(m.sent[len(m.sent)-1].Text)
	if code == "" {
		t.Fatalf("no code in %q", m.sent[len(m.sent)-1].Text)
	}
	return code
}

type fakeFiles struct {
	deleted []string
}

func (f *fakeFiles) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://s3.test/put/" + key, nil
}

func (f *fakeFiles) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.test/get/" + key, nil
}

func (f *fakeFiles) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type accountFixture struct {
	auth    AuthService
	account AccountService
	mail    *captureMailer
	files   *fakeFiles
	tokens  *Tokens
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	users := gormdb.NewUserRepository(db)
	store := verification.NewMemoryStore()
	mail := &captureMailer{}
	files := &fakeFiles{}
	tokens := NewTokens("test-secret", time.Hour, 24*time.Hour)
	return &accountFixture{
		auth:    NewAuthService(log, users, tokens, store, mail, time.Minute),
		account: NewAccountService(log, users, files, store, mail, time.Minute),
		mail:    mail,
		files:   files,
		tokens:  tokens,
	}
}

func (f *accountFixture) register(t *testing.T, nickname string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{
		Nickname: nickname,
		Email:    " " + nickname + "@Example.com ",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return res
}

func TestRegisterLoginRefresh(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	res := f.register(t, "alice")

	if res.User.Email != "alice@example.com" || res.User.IsVerified {
		t.Fatalf("registered user = %+v", res.User)
	}
	if res.Access == "" || res.Refresh == "" {
		t.Fatal("tokens missing")
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0].To != "alice@example.com" {
		t.Fatalf("verification mail = %+v", f.mail.sent)
	}

	if _, err := f.auth.Login(ctx, "ALICE@example.com", "correct horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, errPwd := f.auth.Login(ctx, "alice@example.com", "wrong")
	_, errUser := f.auth.Login(ctx, "nobody@example.com", "correct horse")
	if !apperr.Is(errPwd, apperr.KindUnauthorized) || !apperr.Is(errUser, apperr.KindUnauthorized) {
		t.Fatalf("bad login errors: %v / %v", errPwd, errUser)
	}
	if apperr.From(errPwd).Message != apperr.From(errUser).Message {
		t.Fatal("login failures must not reveal which part was wrong")
	}

	access, err := f.auth.Refresh(ctx, res.Refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if id, err := f.auth.Authenticate(access); err != nil || id != res.User.ID {
		t.Fatalf("Authenticate(refreshed) = %q, %v", id, err)
	}
	if _, err := f.auth.Refresh(ctx, res.Access); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := f.auth.Authenticate(res.Refresh); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	f := newAccountFixture(t)
	f.register(t, "alice")

	_, err := f.auth.Register(context.Background(), RegisterInput{Nickname: "other", Email: "alice@example.com", Password: "12345678"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate email err = %v", err)
	}
	_, err = f.auth.Register(context.Background(), RegisterInput{Nickname: "alice", Email: "new@example.com", Password: "12345678"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate nickname err = %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	tokens := NewTokens("s", time.Minute, time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	access, _, err := tokens.Pair("u1")
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if _, err := tokens.Parse(access, TokenAccess); err == nil {
		t.Fatal("expired token accepted")
	}
	other := NewTokens("different", time.Minute, time.Minute)
	fresh, _, _ := other.Pair("u1")
	if _, err := tokens.Parse(fresh, TokenAccess); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestVerifyEmail(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	res := f.register(t, "alice")
	code := f.mail.lastCode(t)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if err := f.account.Verify(ctx, res.User.ID, wrong); !apperr.Is(err, apperr.KindInvalidRequest) {
		t.Fatalf("wrong code err = %v", err)
	}
	if err := f.account.Verify(ctx, res.User.ID, code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	me, err := f.account.Me(ctx, res.User.ID)
	if err != nil || !me.IsVerified {
		t.Fatalf("Me = %+v, %v", me, err)
	}
	if err := f.account.Verify(ctx, res.User.ID, code); !apperr.Is(err, apperr.KindInvalidRequest) {
		t.Fatalf("second verify err = %v", err)
	}
	if err := f.account.ResendCode(ctx, res.User.ID); !apperr.Is(err, apperr.KindInvalidRequest) {
		t.Fatalf("resend after verify err = %v", err)
	}
}

func TestResendReplacesCode(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	res := f.register(t, "alice")
	if err := f.account.ResendCode(ctx, res.User.ID); err != nil {
		t.Fatalf("ResendCode: %v", err)
	}
	if len(f.mail.sent) != 2 {
		t.Fatalf("mails = %d", len(f.mail.sent))
	}
	if err := f.account.Verify(ctx, res.User.ID, f.mail.lastCode(t)); err != nil {
		t.Fatalf("Verify with resent code: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	res := f.register(t, "alice")

	cases := []struct {
		name  string
		in    ChangePasswordInput
		field string
	}{
		{"mismatch", ChangePasswordInput{"correct horse", "newpassword", "other"}, "confirm_password"},
		{"short", ChangePasswordInput{"correct horse", "short", "short"}, "new_password"},
		{"wrong old", ChangePasswordInput{"nope", "newpassword", "newpassword"}, "old_password"},
	}
	for _, tc := range cases {
		err := f.account.ChangePassword(ctx, res.User.ID, tc.in)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
		if _, ok := apperr.From(err).Fields[tc.field]; !ok {
			t.Errorf("%s: fields = %v, want %s", tc.name, apperr.From(err).Fields, tc.field)
		}
	}

	if err := f.account.ChangePassword(ctx, res.User.ID, ChangePasswordInput{"correct horse", "newpassword", "newpassword"}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := f.auth.Login(ctx, "alice@example.com", "newpassword"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAvatarAndDelete(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	res := f.register(t, "alice")

	if _, err := f.account.AvatarURL(ctx, res.User.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("AvatarURL without avatar err = %v", err)
	}
	if _, err := f.account.AvatarUploadURL(ctx, res.User.ID, "a.exe", "application/octet-stream"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("non-image upload err = %v", err)
	}

	first, err := f.account.AvatarUploadURL(ctx, res.User.ID, "me.png", "image/png")
	if err != nil {
		t.Fatalf("AvatarUploadURL: %v", err)
	}
	url, err := f.account.AvatarURL(ctx, res.User.ID)
	if err != nil || url != "https://s3.test/get/"+first.ObjectKey {
		t.Fatalf("AvatarURL = %q, %v", url, err)
	}

	if err := f.account.DeleteMe(ctx, res.User.ID); err != nil {
		t.Fatalf("DeleteMe: %v", err)
	}
	if len(f.files.deleted) != 1 || f.files.deleted[0] != first.ObjectKey {
		t.Fatalf("deleted objects = %v", f.files.deleted)
	}
	if _, err := f.account.Me(ctx, res.User.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Me after delete err = %v", err)
	}
	if _, err := f.auth.Refresh(ctx, res.Refresh); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("refresh after delete err = %v", err)
	}
}

func TestUpdateMePartial(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	res := f.register(t, "alice")
	first := "Alice"
	user, err := f.account.UpdateMe(ctx, res.User.ID, UpdateUserInput{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateMe: %v", err)
	}
	if user.FirstName != "Alice" || user.LastName != "" || user.Nickname != "alice" {
		t.Fatalf("updated user = %+v", user)
	}
}
