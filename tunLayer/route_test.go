package tunLayer_test

import (
	"errors"
	"testing"

	"github.com/e1732a364fed/tun_simple/tunLayer"
	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

// 这些坏参数必须在碰routing socket之前就被拦下, 所以不需要任何权限就能测
func TestAddRouteBadParams(t *testing.T) {
	rc := tunLayer.NewRouteClient("tun0")

	if e := rc.AddRoute(tunLayer.AFUnknown, []byte{10, 0, 0, 0}, 8); !errors.Is(e, tunLayer.ErrUnsupportedFamily) {
		t.Log(e)
		t.Fail()
	}

	if e := rc.AddRoute(unix.AF_INET, []byte{10, 0, 0}, 8); !errors.Is(e, utils.ErrWrongParameter) {
		t.Log(e)
		t.Fail()
	}
	if e := rc.AddRoute(unix.AF_INET, make([]byte, 16), 8); !errors.Is(e, utils.ErrWrongParameter) {
		t.Log(e)
		t.Fail()
	}
	if e := rc.AddRoute(unix.AF_INET, []byte{10, 0, 0, 0}, 33); !errors.Is(e, utils.ErrWrongParameter) {
		t.Log(e)
		t.Fail()
	}

	if e := rc.AddRoute(unix.AF_INET6, make([]byte, 4), 8); !errors.Is(e, utils.ErrWrongParameter) {
		t.Log(e)
		t.Fail()
	}
	if e := rc.AddRoute(unix.AF_INET6, make([]byte, 16), 129); !errors.Is(e, utils.ErrWrongParameter) {
		t.Log(e)
		t.Fail()
	}
	if e := rc.AddRoute(unix.AF_INET6, make([]byte, 16), -1); !errors.Is(e, utils.ErrWrongParameter) {
		t.Log(e)
		t.Fail()
	}
}
