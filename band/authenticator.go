package band

import (
	"context"
	"strings"
	"time"

	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/256dpi/flock/roost"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Policy configures an authenticator.
type Policy struct {
	// The secret used to sign and verify tokens. Should be at least 16
	// characters long to ensure strong security.
	Secret []byte

	// The token lifetime.
	TokenLifetime time.Duration
}

// DefaultPolicy returns a policy with the provided secret and a token
// lifetime of one week.
func DefaultPolicy(secret string) Policy {
	return Policy{
		Secret:        []byte(secret),
		TokenLifetime: 7 * 24 * time.Hour,
	}
}

// Authenticator provides sign up, sign in and identity management on top of a
// store.
type Authenticator struct {
	store  *roost.Store
	policy Policy
}

// NewAuthenticator creates a new authenticator using the provided store and
// policy.
func NewAuthenticator(store *roost.Store, policy Policy) *Authenticator {
	return &Authenticator{
		store:  store,
		policy: policy,
	}
}

// EnsureIndexes will ensure that the unique email index exists.
func (a *Authenticator) EnsureIndexes(ctx context.Context) error {
	// ensure unique email index
	_, err := a.store.C(&User{}).Native().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// SignUp will create a new user with the provided credentials and return its
// identity together with a session token.
func (a *Authenticator) SignUp(ctx context.Context, email, password, name string) (*Identity, string, error) {
	// trace
	ctx, span := xo.Trace(ctx, "band/Authenticator.SignUp")
	defer span.End()

	// normalize email
	email = strings.ToLower(strings.TrimSpace(email))

	// check email
	if !govalidator.IsEmail(email) {
		return nil, "", Denied(InvalidEmail)
	}

	// check password
	if len(password) < MinPasswordLength {
		return nil, "", Denied(WeakPassword)
	}

	// check existing user
	err := a.store.C(&User{}).FindOne(ctx, bson.M{"email": email}).Decode(&User{})
	if err == nil {
		return nil, "", Denied(EmailInUse)
	} else if !roost.IsMissing(err) {
		return nil, "", xo.W(err)
	}

	// prepare user
	user := &User{
		Base:  roost.B(),
		Email: email,
		Name:  name,
	}

	// set password
	err = user.SetPassword(password)
	if err != nil {
		return nil, "", err
	}

	// validate user
	err = user.Validate()
	if err != nil {
		return nil, "", err
	}

	// insert user
	_, err = a.store.C(user).InsertOne(ctx, user)
	if isDuplicate(err) {
		return nil, "", Denied(EmailInUse)
	} else if err != nil {
		return nil, "", xo.W(err)
	}

	// issue token
	token, err := a.issue(user.ID())
	if err != nil {
		return nil, "", err
	}

	return user.Identity(), token, nil
}

// SignIn will authenticate the provided credentials and return the matching
// identity together with a session token.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Identity, string, error) {
	// trace
	ctx, span := xo.Trace(ctx, "band/Authenticator.SignIn")
	defer span.End()

	// normalize email
	email = strings.ToLower(strings.TrimSpace(email))

	// find user
	var user User
	err := a.store.C(&user).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if roost.IsMissing(err) {
		return nil, "", Denied(InvalidCredentials)
	} else if err != nil {
		return nil, "", xo.W(err)
	}

	// check password
	if !user.ValidPassword(password) {
		return nil, "", Denied(InvalidCredentials)
	}

	// issue token
	token, err := a.issue(user.ID())
	if err != nil {
		return nil, "", err
	}

	return user.Identity(), token, nil
}

// Verify will verify the provided session token and return the id of the
// authenticated user.
func (a *Authenticator) Verify(token string) (roost.ID, error) {
	return parseToken(token, a.policy.Secret)
}

// Fetch will return the identity of the specified user.
func (a *Authenticator) Fetch(ctx context.Context, id roost.ID) (*Identity, error) {
	// trace
	ctx, span := xo.Trace(ctx, "band/Authenticator.Fetch")
	defer span.End()

	// find user
	var user User
	err := a.store.C(&user).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if roost.IsMissing(err) {
		return nil, xo.SF("unknown user")
	} else if err != nil {
		return nil, xo.W(err)
	}

	return user.Identity(), nil
}

// Update will update the display name and avatar URL of the specified user.
// Empty values are left unchanged. The email is immutable.
func (a *Authenticator) Update(ctx context.Context, id roost.ID, name, avatarURL string) (*Identity, error) {
	// trace
	ctx, span := xo.Trace(ctx, "band/Authenticator.Update")
	defer span.End()

	// collect changes
	changes := bson.M{}
	if name != "" {
		changes["name"] = name
	}
	if avatarURL != "" {
		changes["avatar_url"] = avatarURL
	}

	// skip update without changes
	if len(changes) == 0 {
		return a.Fetch(ctx, id)
	}

	// update user
	res, err := a.store.C(&User{}).UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": changes,
	})
	if err != nil {
		return nil, xo.W(err)
	} else if res.MatchedCount == 0 {
		return nil, xo.SF("unknown user")
	}

	return a.Fetch(ctx, id)
}

func (a *Authenticator) issue(id roost.ID) (string, error) {
	// get time
	now := time.Now()

	return generateToken(id, a.policy.Secret, now, now.Add(a.policy.TokenLifetime))
}

func isDuplicate(err error) bool {
	// covers both the native driver and the lungo engine
	return err != nil && (mongo.IsDuplicateKeyError(err) || strings.Contains(err.Error(), "duplicate key"))
}
