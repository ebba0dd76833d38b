package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestZaplog(t *testing.T) {

	LogLevel = Log_info
	InitLog("log test started")

	if ce := CanLogDebug("test1"); ce != nil {
		ce.Write(
			zap.Uint32("af", 2),
			zap.Error(errors.New("asdfdsf")),
		)
	}

	if ce := CanLogInfo("test2"); ce != nil {
		ce.Write(
			zap.Uint32("af", 2),
			zap.Error(errors.New("asdfdsf")),
		)
	}

	Warn("test3")
}

func TestZaplogToFile(t *testing.T) {

	fn := filepath.Join(t.TempDir(), "tun_simple_test.log")

	LogLevel = Log_debug
	LogOutFileName = fn
	defer func() {
		LogOutFileName = ""
	}()

	InitLog("log file test started")

	Info("something happened")
	if err := ZapLogger.Sync(); err != nil {
		t.Log("sync:", err) //stdout syncer在某些系统上会报错, 不影响文件部分
	}

	bs, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if len(bs) == 0 {
		t.Fatal("nothing was written to the log file")
	}
	t.Log(string(bs))
}
