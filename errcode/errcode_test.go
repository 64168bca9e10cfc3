package errcode

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseErr(t *testing.T) {
	if e := ParseErr(nil); e.Code != CodeOK {
		t.Errorf("nil error: code %d", e.Code)
	}

	biz := NewNotFoundErr("project not found")
	if e := ParseErr(biz); e != biz {
		t.Error("business error not passed through")
	}

	// 非业务错误一律按fatal归类
	plain := errors.New("dial tcp: connection refused")
	e := ParseErr(plain)
	if e.Code != CodeFatal {
		t.Errorf("plain error: code %d", e.Code)
	}
	if e.Msg != plain.Error() {
		t.Errorf("plain error: msg %q", e.Msg)
	}
}

func TestIs(t *testing.T) {
	if !Is(ErrAlreadyCompleted, CodeAlreadyCompleted) {
		t.Error("expected match on already completed")
	}
	if Is(ErrAlreadyCompleted, CodeForbidden) {
		t.Error("matched wrong code")
	}
	if Is(errors.New("plain"), CodeFatal) {
		t.Error("plain error must not match any code")
	}
	if Is(nil, CodeOK) {
		t.Error("nil must not match")
	}
}
