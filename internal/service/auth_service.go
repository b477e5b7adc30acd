package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"islamicapp/internal/config"
	"islamicapp/internal/model"
	"islamicapp/internal/repository"
	"islamicapp/pkg/errs"
	"islamicapp/pkg/password"
	"islamicapp/pkg/token"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 用户侧文案（阿拉伯语）
const (
	msgFieldRequired       = "%s مطلوب"
	msgInvalidEmail        = "صيغة البريد الإلكتروني غير صحيحة"
	msgWeakPassword        = "كلمة المرور يجب أن تكون 8 أحرف على الأقل"
	msgWeakNewPassword     = "كلمة المرور الجديدة يجب أن تكون 8 أحرف على الأقل"
	msgUsernameTaken       = "اسم المستخدم مستخدم بالفعل"
	msgEmailTaken          = "البريد الإلكتروني مستخدم بالفعل"
	msgIdentityTaken       = "اسم المستخدم أو البريد الإلكتروني مستخدم بالفعل"
	msgInvalidCredentials  = "اسم المستخدم أو كلمة المرور غير صحيحة"
	msgAccountInactive     = "الحساب غير مفعل"
	msgUserNotFound        = "المستخدم غير موجود"
	msgWrongCurrentPass    = "كلمة المرور الحالية غير صحيحة"
	msgInvalidBirthDate    = "صيغة تاريخ الميلاد غير صحيحة"
	msgCredentialsRequired = "اسم المستخدم وكلمة المرور مطلوبان"
	msgPasswordsRequired   = "كلمة المرور الحالية والجديدة مطلوبتان"
	msgInvalidToken        = "الرمز المميز غير صالح أو منتهي الصلاحية"
	msgInvalidGender       = "قيمة الجنس غير صحيحة"
)

const minPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// TokenPair 登录、注册时一次性下发的两个令牌
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	db        *gorm.DB
	userRepo  *repository.UserRepository
	prefRepo  *repository.PreferenceRepository
	statsRepo *repository.ReadingStatsRepository
	tokens    *token.Manager
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:        db,
		userRepo:  repository.NewUserRepository(db),
		prefRepo:  repository.NewPreferenceRepository(db),
		statsRepo: repository.NewReadingStatsRepository(db),
		tokens: token.NewManager(
			cfg.JWT.Secret,
			time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
			time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour,
		),
	}
}

// Tokens 给中间件和刷新接口复用同一个令牌管理器
func (s *AuthService) Tokens() *token.Manager {
	return s.tokens
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD，可缺省
}

// Register 注册
// 用户、默认偏好、默认阅读进度在同一个事务里落库，失败整体回滚
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*model.User, *TokenPair, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" {
		return nil, nil, errs.Validation(fmt.Sprintf(msgFieldRequired, "username"))
	}
	if email == "" {
		return nil, nil, errs.Validation(fmt.Sprintf(msgFieldRequired, "email"))
	}
	if req.Password == "" {
		return nil, nil, errs.Validation(fmt.Sprintf(msgFieldRequired, "password"))
	}
	if !emailPattern.MatchString(email) {
		return nil, nil, errs.Validation(msgInvalidEmail)
	}
	if len(req.Password) < minPasswordLen {
		return nil, nil, errs.Validation(msgWeakPassword)
	}

	// 冲突检查顺序固定：先用户名后邮箱
	taken, err := s.userRepo.UsernameExists(ctx, username, 0)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}
	if taken {
		return nil, nil, errs.Conflict(msgUsernameTaken)
	}
	taken, err = s.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}
	if taken {
		return nil, nil, errs.Conflict(msgEmailTaken)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}

	var dateOfBirth *time.Time
	if strings.TrimSpace(req.DateOfBirth) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
		if err != nil {
			return nil, nil, errs.Validation(msgInvalidBirthDate)
		}
		dateOfBirth = &parsed
	}

	gender := strings.TrimSpace(req.Gender)
	if !model.IsValidGender(gender) {
		gender = ""
	}

	user := &model.User{
		PublicID:     uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Country:      strings.TrimSpace(req.Country),
		City:         strings.TrimSpace(req.City),
		DateOfBirth:  dateOfBirth,
		Gender:       gender,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		if err := s.prefRepo.Create(ctx, tx, model.DefaultPreference(user.ID)); err != nil {
			return err
		}
		if err := s.statsRepo.Create(ctx, tx, model.DefaultReadingStats(user.ID)); err != nil {
			return err
		}
		return s.userRepo.StampLastLogin(ctx, tx, user)
	})
	if err != nil {
		// 并发注册撞了唯一索引，预检查没拦住时兜底
		// 撞的可能是用户名也可能是邮箱，文案不区分
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, errs.Conflict(msgIdentityTaken)
		}
		return nil, nil, errs.Internal(err)
	}

	pair, err := s.generatePair(user)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}
	return user, pair, nil
}

// Login 登录，标识可以是用户名或邮箱
// 用户不存在和密码错误返回同一条文案，不暴露账号是否存在
func (s *AuthService) Login(ctx context.Context, identifier, plainPassword string) (*model.User, *TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, nil, errs.Validation(msgCredentialsRequired)
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier, strings.ToLower(identifier))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, errs.Auth(msgInvalidCredentials)
		}
		return nil, nil, errs.Internal(err)
	}

	if err := password.Verify(user.PasswordHash, plainPassword); err != nil {
		return nil, nil, errs.Auth(msgInvalidCredentials)
	}

	if !user.IsActive {
		return nil, nil, errs.Auth(msgAccountInactive)
	}

	if err := s.userRepo.StampLastLogin(ctx, nil, user); err != nil {
		return nil, nil, errs.Internal(err)
	}

	pair, err := s.generatePair(user)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}
	return user, pair, nil
}

// Authenticate 校验访问令牌并解析出用户，所有受保护路由的前置检查
// 账号已停用时即使令牌有效也拒绝
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	publicID, err := s.tokens.Verify(accessToken, token.TypeAccess)
	if err != nil {
		return nil, errs.Auth(msgInvalidToken)
	}

	user, err := s.userRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errs.Auth(msgUserNotFound)
		}
		return nil, errs.Internal(err)
	}
	if !user.IsActive {
		return nil, errs.Auth(msgAccountInactive)
	}
	return user, nil
}

// Refresh 用刷新令牌换新的访问令牌，刷新令牌本身不轮换
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	publicID, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return "", errs.Auth(msgInvalidToken)
	}

	user, err := s.userRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", errs.Auth(msgUserNotFound)
		}
		return "", errs.Internal(err)
	}
	if !user.IsActive {
		return "", errs.Auth(msgAccountInactive)
	}

	access, err := s.tokens.GenerateAccess(user.PublicID)
	if err != nil {
		return "", errs.Internal(err)
	}
	return access, nil
}

type UpdateProfileRequest struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Country        *string `json:"country"`
	City           *string `json:"city"`
	Gender         *string `json:"gender"`
	DateOfBirth    *string `json:"date_of_birth"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateProfile 部分更新，只动请求里带的字段
// 用户名、邮箱改动要重新查重（排除自己）
func (s *AuthService) UpdateProfile(ctx context.Context, user *model.User, req *UpdateProfileRequest) (*model.User, error) {
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, errs.Validation(fmt.Sprintf(msgFieldRequired, "username"))
		}
		if username != user.Username {
			taken, err := s.userRepo.UsernameExists(ctx, username, user.ID)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if taken {
				return nil, errs.Conflict(msgUsernameTaken)
			}
			user.Username = username
		}
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			return nil, errs.Validation(msgInvalidEmail)
		}
		if email != user.Email {
			taken, err := s.userRepo.EmailExists(ctx, email, user.ID)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if taken {
				return nil, errs.Conflict(msgEmailTaken)
			}
			user.Email = email
		}
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Country != nil {
		user.Country = strings.TrimSpace(*req.Country)
	}
	if req.City != nil {
		user.City = strings.TrimSpace(*req.City)
	}
	if req.Gender != nil {
		gender := strings.TrimSpace(*req.Gender)
		if gender != "" && !model.IsValidGender(gender) {
			return nil, errs.Validation(msgInvalidGender)
		}
		user.Gender = gender
	}
	if req.DateOfBirth != nil {
		value := strings.TrimSpace(*req.DateOfBirth)
		if value == "" {
			user.DateOfBirth = nil
		} else {
			parsed, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, errs.Validation(msgInvalidBirthDate)
			}
			user.DateOfBirth = &parsed
		}
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*req.ProfilePicture)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		// 查重和落库之间被并发请求抢了标识，撞的索引不确定，文案不区分
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict(msgIdentityTaken)
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

// ChangePassword 改密码，先核对旧密码再校验新密码强度
func (s *AuthService) ChangePassword(ctx context.Context, user *model.User, current, newPassword string) error {
	if current == "" || newPassword == "" {
		return errs.Validation(msgPasswordsRequired)
	}
	if err := password.Verify(user.PasswordHash, current); err != nil {
		return errs.Auth(msgWrongCurrentPass)
	}
	if len(newPassword) < minPasswordLen {
		return errs.Validation(msgWeakNewPassword)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return errs.Internal(err)
	}
	user.PasswordHash = hash

	if err := s.userRepo.Save(ctx, user); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *AuthService) generatePair(user *model.User) (*TokenPair, error) {
	access, refresh, err := s.tokens.GeneratePair(user.PublicID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
