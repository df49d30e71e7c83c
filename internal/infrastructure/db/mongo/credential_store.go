package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const collectionUsers = "users"

// CredentialStore implements ports.CredentialStore on the users collection.
// Password hashes never leave this type.
type CredentialStore struct {
	col        *mongo.Collection
	policy     domain.PasswordPolicy
	bcryptCost int
	guard      ports.SignInGuard
	recorder   ports.SignInRecorder
	log        zerolog.Logger
	now        func() time.Time
}

// CredentialOption customises a CredentialStore.
type CredentialOption func(*CredentialStore)

// WithPasswordPolicy replaces domain.DefaultPasswordPolicy.
func WithPasswordPolicy(p domain.PasswordPolicy) CredentialOption {
	return func(s *CredentialStore) { s.policy = p }
}

// WithBcryptCost sets the hashing cost. Values outside bcrypt's range fall
// back to bcrypt.DefaultCost.
func WithBcryptCost(cost int) CredentialOption {
	return func(s *CredentialStore) { s.bcryptCost = cost }
}

// WithSignInGuard enables account lockout after repeated failures.
func WithSignInGuard(g ports.SignInGuard) CredentialOption {
	return func(s *CredentialStore) { s.guard = g }
}

// WithSignInRecorder forwards the outcome of every password check.
func WithSignInRecorder(r ports.SignInRecorder) CredentialOption {
	return func(s *CredentialStore) { s.recorder = r }
}

func WithLogger(log zerolog.Logger) CredentialOption {
	return func(s *CredentialStore) { s.log = log }
}

func NewCredentialStore(db *mongo.Database, opts ...CredentialOption) *CredentialStore {
	s := &CredentialStore{
		col:        db.Collection(collectionUsers),
		policy:     domain.DefaultPasswordPolicy,
		bcryptCost: bcrypt.DefaultCost,
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bcryptCost < bcrypt.MinCost || s.bcryptCost > bcrypt.MaxCost {
		s.bcryptCost = bcrypt.DefaultCost
	}
	return s
}

type userDocument struct {
	ID                 string         `bson:"_id"`
	Username           string         `bson:"username"`
	NormalizedUsername string         `bson:"normalized_username"`
	Email              string         `bson:"email"`
	NormalizedEmail    string         `bson:"normalized_email"`
	PasswordHash       string         `bson:"password_hash"`
	Roles              []string       `bson:"roles"`
	Claims             []domain.Claim `bson:"claims"`
	EmailConfirmed     bool           `bson:"email_confirmed"`
	CreatedAt          time.Time      `bson:"created_at"`
	UpdatedAt          time.Time      `bson:"updated_at"`
}

func (d *userDocument) toDomain() *domain.UserAccount {
	return &domain.UserAccount{
		ID:             d.ID,
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Roles:          d.Roles,
		Claims:         d.Claims,
		EmailConfirmed: d.EmailConfirmed,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// FindByUsername looks the account up by its normalized username.
func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*domain.UserAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	err := s.col.FindOne(ctx, bson.M{"normalized_username": domain.NormalizeName(username)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// CreateUser validates the account and password, hashes the password and
// inserts the document. Rejections come back as *domain.RegistrationError.
func (s *CredentialStore) CreateUser(ctx context.Context, user *domain.UserAccount, password string) error {
	reasons := domain.ValidateAccount(user.Username, user.Email)
	reasons = append(reasons, s.policy.Validate(password)...)
	if len(reasons) > 0 {
		return &domain.RegistrationError{Reasons: reasons}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := s.now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	user.PasswordHash = string(hash)

	doc := userDocument{
		ID:                 user.ID,
		Username:           user.Username,
		NormalizedUsername: domain.NormalizeName(user.Username),
		Email:              user.Email,
		NormalizedEmail:    domain.NormalizeName(user.Email),
		PasswordHash:       user.PasswordHash,
		Roles:              []string{},
		Claims:             []domain.Claim{},
		EmailConfirmed:     user.EmailConfirmed,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewRegistrationError(domain.CodeDuplicateUserName,
				fmt.Sprintf("Username '%s' is already taken.", user.Username))
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CheckPassword compares password against the stored hash. A locked account
// fails without comparing.
func (s *CredentialStore) CheckPassword(ctx context.Context, user *domain.UserAccount, password string) (bool, error) {
	if s.guard != nil {
		locked, err := s.guard.IsLockedOut(ctx, user.Username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", user.Username).Msg("lockout check failed, continuing")
		} else if locked {
			s.emit(user.Username, domain.SignInLockedOut)
			return false, nil
		}
	}

	hash := user.PasswordHash
	if hash == "" {
		doc, err := s.load(ctx, user)
		if err != nil {
			return false, err
		}
		hash = doc.PasswordHash
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		if s.guard != nil {
			if gerr := s.guard.RecordFailure(ctx, user.Username); gerr != nil {
				s.log.Warn().Err(gerr).Str("username", user.Username).Msg("failed to record sign-in failure")
			}
		}
		s.emit(user.Username, domain.SignInBadPassword)
		return false, nil
	case err != nil:
		return false, fmt.Errorf("compare password: %w", err)
	}

	if s.guard != nil {
		if gerr := s.guard.Reset(ctx, user.Username); gerr != nil {
			s.log.Warn().Err(gerr).Str("username", user.Username).Msg("failed to reset sign-in failures")
		}
	}
	s.emit(user.Username, domain.SignInSucceeded)
	return true, nil
}

// GetRoles re-reads the account so roles assigned after lookup are included.
func (s *CredentialStore) GetRoles(ctx context.Context, user *domain.UserAccount) ([]string, error) {
	doc, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return doc.Roles, nil
}

func (s *CredentialStore) GetClaims(ctx context.Context, user *domain.UserAccount) ([]domain.Claim, error) {
	doc, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return doc.Claims, nil
}

// AddToRole adds role to the account's role set.
func (s *CredentialStore) AddToRole(ctx context.Context, user *domain.UserAccount, role string) error {
	return s.update(ctx, user, bson.M{"$addToSet": bson.M{"roles": role}})
}

// AddClaim appends claim to the account's claims.
func (s *CredentialStore) AddClaim(ctx context.Context, user *domain.UserAccount, claim domain.Claim) error {
	return s.update(ctx, user, bson.M{"$push": bson.M{"claims": claim}})
}

func (s *CredentialStore) update(ctx context.Context, user *domain.UserAccount, change bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	change["$set"] = bson.M{"updated_at": s.now().UTC()}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": user.ID}, change)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.Username, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *CredentialStore) load(ctx context.Context, user *domain.UserAccount) (*userDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	opts := options.FindOne().SetProjection(bson.M{"roles": 1, "claims": 1, "password_hash": 1})
	if err := s.col.FindOne(ctx, bson.M{"_id": user.ID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %s: %w", user.Username, err)
	}
	return &doc, nil
}

func (s *CredentialStore) emit(username string, outcome domain.SignInOutcome) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(domain.SignInEvent{
		Username:   username,
		Outcome:    outcome,
		OccurredAt: s.now().UTC(),
	})
}

// EnsureIndexes creates the unique username index and an email lookup index.
func (s *CredentialStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "normalized_username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "normalized_email", Value: 1}}},
	}

	_, err := s.col.Indexes().CreateMany(ctx, indexes)
	return err
}
