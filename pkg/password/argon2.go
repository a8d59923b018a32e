package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// MinLength 注册时密码最少字节数
const MinLength = 6

const algorithmID = "argon2id"

var (
	ErrTooShort     = fmt.Errorf("password must be at least %d characters", MinLength)
	ErrInvalidHash  = errors.New("invalid PHC hash format")
	ErrUnsupportAlg = errors.New("unsupported hash algorithm")
)

// Params argon2id 参数
type Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams 默认参数 (64MB, 1 轮)
var DefaultParams = Params{
	Memory:      64 * 1024,
	Time:        1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash 使用默认参数生成 PHC 格式哈希
func Hash(plain string) (string, error) {
	return HashWithParams(plain, DefaultParams)
}

// HashWithParams 生成 $argon2id$v=19$m=..,t=..,p=..$salt$hash
func HashWithParams(plain string, p Params) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}

	salt := make([]byte, p.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify 常量时间比较明文与哈希
func Verify(plain, encoded string) (bool, error) {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, ErrInvalidHash
	}
	if parts[1] != algorithmID {
		return p, nil, nil, ErrUnsupportAlg
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return p, nil, nil, ErrInvalidHash
	}

	for _, pair := range strings.Split(parts[3], ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return p, nil, nil, ErrInvalidHash
		}
		v, err := strconv.ParseUint(kv[1], 10, 32)
		if err != nil || v == 0 {
			return p, nil, nil, ErrInvalidHash
		}
		switch kv[0] {
		case "m":
			p.Memory = uint32(v)
		case "t":
			p.Time = uint32(v)
		case "p":
			if v > 255 {
				return p, nil, nil, ErrInvalidHash
			}
			p.Parallelism = uint8(v)
		default:
			return p, nil, nil, ErrInvalidHash
		}
	}
	if p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	return p, salt, key, nil
}
