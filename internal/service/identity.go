package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// TokenSelf 路径上代表当前登录用户的记法
const TokenSelf = "me"

// Caller 已通过认证的调用方
type Caller struct {
	PubID string
}

// IdentitySpecifier 路径上 :userid 解析后的结果，仅在请求内有效。
//
//	VerifyOK    是否已查库确认存在
//	SpecByAnon  是否通过匿名 ID 指定
//	IsSelf      仅 me 记法时非空
type IdentitySpecifier struct {
	PubID      string
	AnonPubID  string
	VerifyOK   bool
	SpecByAnon bool
	IsSelf     *bool
}

// IsCaller 解析出的主体是否就是调用方本人
func (s *IdentitySpecifier) IsCaller(caller *Caller) bool {
	return caller != nil && s.PubID == caller.PubID
}

type IdentityResolver struct {
	users repository.UserRepository
}

func NewIdentityResolver(users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve 按记法分派：me / @handle / ~anon / 其余原样透传（不校验存在）
func (r *IdentityResolver) Resolve(ctx context.Context, token string, caller *Caller) (*IdentitySpecifier, error) {
	switch {
	case token == "":
		return nil, apperr.NotFound("User", "empty user id")
	case token == TokenSelf:
		if caller == nil || caller.PubID == "" {
			return nil, apperr.Unauthorized("User", "sign in to use me")
		}
		self := true
		return &IdentitySpecifier{PubID: caller.PubID, VerifyOK: true, IsSelf: &self}, nil
	case strings.HasPrefix(token, "@"):
		u, err := r.users.GetByHandle(ctx, token[1:])
		if err != nil {
			return nil, lookupErr(err, "handle "+token)
		}
		return &IdentitySpecifier{PubID: u.PubID, VerifyOK: true}, nil
	case strings.HasPrefix(token, model.AnonPrefix):
		u, err := r.users.GetByAnonPubID(ctx, token)
		if err != nil {
			return nil, lookupErr(err, "anon id "+token)
		}
		return &IdentitySpecifier{PubID: u.PubID, AnonPubID: token, VerifyOK: true, SpecByAnon: true}, nil
	default:
		return &IdentitySpecifier{PubID: token}, nil
	}
}

// MustExist 取主体用户。透传分支在这里才真正确认存在。
func (r *IdentityResolver) MustExist(ctx context.Context, spec *IdentitySpecifier) (*model.User, error) {
	u, err := r.users.GetByPubID(ctx, spec.PubID)
	if err != nil {
		return nil, lookupErr(err, spec.PubID)
	}
	return u, nil
}

// RejectIfSpecifiedByAnon 通过匿名 ID 指定主体时禁止写操作
func RejectIfSpecifiedByAnon(spec *IdentitySpecifier) error {
	if spec != nil && spec.SpecByAnon {
		return apperr.Forbidden("User", "not allowed via anonymous id")
	}
	return nil
}

func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("User", what)
	}
	return apperr.Fatal(err, "lookup user by %s", what)
}
