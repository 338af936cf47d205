package file

import (
	"io"
	"os"
	"path/filepath"
)

func CheckNotExist(src string) bool {
	_, err := os.Stat(src)

	return os.IsNotExist(err)
}

// IsNotExistMkDir create a directory if it does not exist
func IsNotExistMkDir(src string) error {
	if notExist := CheckNotExist(src); notExist {
		if err := MkDir(src); err != nil {
			return err
		}
	}

	return nil
}

// MkDir create a directory
func MkDir(src string) error {
	return os.MkdirAll(src, 0o755)
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CopySingleFile copies src to dst keeping the file mode. With style "skip"
// an existing dst is left alone, otherwise it is overwritten.
func CopySingleFile(src, dst, style string) error {
	if Exists(dst) {
		if style == "skip" {
			return nil
		}
		if err := os.Remove(dst); err != nil {
			return err
		}
	}

	srcfd, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcfd.Close()

	if err := IsNotExistMkDir(filepath.Dir(dst)); err != nil {
		return err
	}

	dstfd, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstfd.Close()

	if _, err = io.Copy(dstfd, srcfd); err != nil {
		return err
	}
	srcinfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcinfo.Mode())
}
