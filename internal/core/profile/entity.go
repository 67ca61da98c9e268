package profile

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidUID は UID が空の場合のエラーです。
	ErrInvalidUID = errors.New("profile: uid must not be empty")
	// ErrInvalidEmail はメールアドレスの形式が不正な場合のエラーです。
	ErrInvalidEmail = errors.New("profile: email is invalid")
	// ErrProfileNotFound はプロフィールが存在しない場合のエラーです。
	ErrProfileNotFound = errors.New("profile: profile not found")
)

// DefaultDepartment は部署が未設定のプロフィールに与える既定値です。
const DefaultDepartment = "Not Set"

// Profile は認証ユーザーに紐づく表示用プロフィールです。
type Profile struct {
	UID        string
	Email      string
	FullName   string
	Department string
	CreatedAt  time.Time
}

// NewProfile は入力を検証して Profile を生成します。部署が空の場合は
// 既定値を補います。
func NewProfile(uid, email, fullName, department string) (*Profile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrInvalidUID
	}

	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	department = strings.TrimSpace(department)
	if department == "" {
		department = DefaultDepartment
	}

	return &Profile{
		UID:        uid,
		Email:      email,
		FullName:   strings.TrimSpace(fullName),
		Department: department,
	}, nil
}
