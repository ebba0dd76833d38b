package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/asaskevich/govalidator"
)

func FileExist(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}

// IsFilePath 判断字符串是否是合法的文件路径格式; 可直接用作 promptui 的 Validate.
func IsFilePath(s string) error {
	if ok, _ := govalidator.IsFilePath(s); !ok {
		return ErrInvalidData
	}
	return nil
}

// Function that search the specified file in the following directories:
//  0. if starts with '/', return directly
//	1. Same folder with exec file
//  2. Same folder of the source file, 应该是用于 go test等情况
//  3. Same folder of working folder
//
// 找不到时返回空字符串. 配置文件和偏好文件都用这个函数来找.
func GetFilePath(fileName string) string {
	if fileName == "" {
		return ""
	}

	if fileName[0] == '/' {
		return fileName
	}

	if execFile, err := os.Executable(); err == nil {

		p := filepath.Join(filepath.Dir(execFile), fileName)

		if _, err := os.Stat(p); err == nil {
			return p
		}

	}

	if _, srcFile, _, ok := runtime.Caller(0); ok {

		p := filepath.Join(filepath.Dir(srcFile), fileName)

		if _, err := os.Stat(p); err == nil {
			return p
		}

	}

	if workingDir, err := os.Getwd(); err == nil {

		p := filepath.Join(workingDir, fileName)

		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
