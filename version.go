package tun_simple

import (
	"fmt"
	"runtime"
)

var Version string = "[version_undefined]" //版本号可由 -ldflags "-X 'github.com/e1732a364fed/tun_simple.Version=v1.x.x'" 指定

func Versionstr() string {
	return fmt.Sprintf("tun_simple %s, %s %s %s", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
