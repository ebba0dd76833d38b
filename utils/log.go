// Package utils provides utilities that is used in all sub-packages in tun_simple
package utils

import (
	"flag"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	Log_debug = iota
	Log_info
	Log_warning
	Log_error //error一般用于 设备配置失败、路由写入失败 之类的情况, 不一定致命
	Log_dpanic
	Log_panic
	Log_fatal

	DefaultLL = Log_info
)

// LogLevel 值越小越唠叨, 废话越多，值越大打印的越少，见log_开头的常量;
// 默认是 info级别. 因为本作要动内核的网络接口，所以默认多打点日志方便排错
var (
	LogLevel       int
	LogOutFileName string //若非空, 日志会同时写到这个文件里

	ZapLogger *zap.Logger
)

func init() {
	//我们的loglevel就是zap的loglevel+1

	flag.IntVar(&LogLevel, "ll", DefaultLL, "log level,0=debug, 1=info, 2=warning, 3=error, 4=dpanic, 5=panic, 6=fatal")
	flag.StringVar(&LogOutFileName, "lf", "", "log output to file")
}

// InitLog 按照当前的 LogLevel 和 LogOutFileName 配置好 ZapLogger,
// 然后把 firstLogMsg 作为第一条日志打印出来.
func InitLog(firstLogMsg string) {
	atomicLevel := zap.NewAtomicLevel()
	atomicLevel.SetLevel(zapcore.Level(LogLevel - 1))

	var writes = []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}

	levelEncoder := zapcore.CapitalColorLevelEncoder

	if LogOutFileName != "" {
		//文件里不要带终端色彩的转义序列
		levelEncoder = zapcore.CapitalLevelEncoder

		writes = append(writes, zapcore.AddSync(&lumberjack.Logger{
			Filename:   LogOutFileName,
			MaxSize:    10,
			MaxBackups: 3,
		}))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		TimeKey:     "time",
		FunctionKey: "func",
		EncodeLevel: levelEncoder,
		EncodeTime:  zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeName:  zapcore.FullNameEncoder,
		LineEnding:  zapcore.DefaultLineEnding,
	}), zapcore.NewMultiWriteSyncer(writes...), atomicLevel)

	ZapLogger = zap.New(core)
	ZapLogger.Info(firstLogMsg)
}

var logLevelStrList = []string{"debug", "info", "warning", "error", "dpanic", "panic", "fatal"}

func LogLevelStrList() []string {
	return logLevelStrList
}

func LogLevelStr(l int) string {
	if l >= 0 && l < len(logLevelStrList) {
		return logLevelStrList[l]
	}
	return "unknown"
}

func CanLogLevel(l int, msg string) *zapcore.CheckedEntry {
	return ZapLogger.Check(zapcore.Level(l-1), msg)

}

func canLogLevel(l zapcore.Level, msg string) *zapcore.CheckedEntry {
	return ZapLogger.Check(l, msg)

}

func CanLogErr(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.ErrorLevel, msg)

}

func CanLogInfo(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.InfoLevel, msg)

}
func CanLogWarn(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.WarnLevel, msg)

}
func CanLogDebug(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.DebugLevel, msg)

}

// 下面几个是不带附加字段时的简便写法

func Debug(msg string) {
	if ce := CanLogDebug(msg); ce != nil {
		ce.Write()
	}
}

func Info(msg string) {
	if ce := CanLogInfo(msg); ce != nil {
		ce.Write()
	}
}

func Warn(msg string) {
	if ce := CanLogWarn(msg); ce != nil {
		ce.Write()
	}
}

func Error(msg string) {
	if ce := CanLogErr(msg); ce != nil {
		ce.Write()
	}
}
