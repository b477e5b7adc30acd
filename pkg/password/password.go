package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash 生成 bcrypt 密码哈希
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// Verify 校验明文密码和哈希是否匹配
func Verify(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
