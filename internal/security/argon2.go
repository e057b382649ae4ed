package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"
)

var (
	errInvalidHashFormat = errors.New("argon2: invalid encoded hash format")
	errInvalidParams     = errors.New("argon2: invalid parameters")
)

// Argon2Params defines tunable parameters for argon2id hashing.
type Argon2Params struct {
	Time    uint32
	MemKiB  uint32
	Par     uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultArgon2Params returns parameters suitable for interactive logins.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    3,
		MemKiB:  64 * 1024,
		Par:     2,
		SaltLen: 16,
		KeyLen:  32,
	}
}

func (p Argon2Params) validate() error {
	switch {
	case p.MemKiB < 8*1024:
		return fmt.Errorf("%w: memory must be at least 8192 KiB", errInvalidParams)
	case p.Time == 0:
		return fmt.Errorf("%w: time must be greater than zero", errInvalidParams)
	case p.Par == 0:
		return fmt.Errorf("%w: parallelism must be greater than zero", errInvalidParams)
	case p.SaltLen < 8:
		return fmt.Errorf("%w: salt must be at least 8 bytes", errInvalidParams)
	case p.KeyLen < 16:
		return fmt.Errorf("%w: key must be at least 16 bytes", errInvalidParams)
	}
	return nil
}

// Argon2Hasher hashes passwords with argon2id and a random per-password salt.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher validates params and returns a hasher.
func NewArgon2Hasher(params Argon2Params) (*Argon2Hasher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Argon2Hasher{params: params}, nil
}

// Hash returns argon2id$v=19$m=<mem>,t=<time>,p=<par>$<salt>$<hash>.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: generate salt: %w", err)
	}

	sum := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, h.params.KeyLen)

	return strings.Join([]string{
		argon2Variant,
		argon2Version,
		fmt.Sprintf("m=%d,t=%d,p=%d", h.params.MemKiB, h.params.Time, h.params.Par),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	}, "$"), nil
}

// Verify compares password with an encoded hash in constant time. The
// parameters embedded in the hash are used, not the hasher's own.
func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	params, salt, expected, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.MemKiB, params.Par, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return Argon2Params{}, nil, nil, errInvalidHashFormat
	}
	if parts[0] != argon2Variant {
		return Argon2Params{}, nil, nil, fmt.Errorf("argon2: unexpected variant %q", parts[0])
	}
	if parts[1] != argon2Version {
		return Argon2Params{}, nil, nil, fmt.Errorf("argon2: unsupported version %q", parts[1])
	}

	params, err := parseParams(parts[2])
	if err != nil {
		return Argon2Params{}, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("argon2: decode salt: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("argon2: decode hash: %w", err)
	}

	params.SaltLen = uint32(len(salt))
	params.KeyLen = uint32(len(hash))
	if err := params.validate(); err != nil {
		return Argon2Params{}, nil, nil, err
	}

	return params, salt, hash, nil
}

func parseParams(segment string) (Argon2Params, error) {
	var p Argon2Params

	entries := strings.Split(segment, ",")
	if len(entries) != 3 {
		return p, errInvalidHashFormat
	}

	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return p, errInvalidHashFormat
		}

		var err error
		switch key {
		case "m":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			p.MemKiB = uint32(v)
		case "t":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			p.Time = uint32(v)
		case "p":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 8)
			p.Par = uint8(v)
		default:
			return p, errInvalidHashFormat
		}
		if err != nil {
			return p, fmt.Errorf("argon2: parse %s: %w", key, err)
		}
	}

	return p, nil
}
