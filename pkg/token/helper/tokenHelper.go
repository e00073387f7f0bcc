package helper

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eventforge/eventforge/pkg/model"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// GenerateAccessToken returns an RS256 signed token. The subject is the users email and the "user" claim carries
// what the authentication middleware needs to identify the user without a database lookup.
func GenerateAccessToken(user *model.User, key *rsa.PrivateKey, expirationInSeconds int) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(time.Duration(expirationInSeconds) * time.Second)).
		Subject(user.Email).
		Claim("user", claimUser(user)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build access token: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %v", err)
	}
	return string(signed), nil
}

// claimUser strips everything but the identifying fields so associations never end up in a token.
func claimUser(user *model.User) *model.User {
	return &model.User{
		ID:                user.ID,
		Email:             user.Email,
		FullName:          user.FullName,
		Role:              user.Role,
		IsEnabled:         user.IsEnabled,
		IsNonLocked:       user.IsNonLocked,
		IsApprovedByAdmin: user.IsApprovedByAdmin,
	}
}

type accessTokenClaims struct {
	Subject   string
	User      *model.User
	ExpiresAt time.Time
}

//goland:noinspection GoExportedFuncWithUnexportedType
func ValidateAccessToken(tokenString string, key *rsa.PublicKey) (*accessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.RS256, key),
	)
	if err != nil {
		return nil, err
	}

	user, err := UserFromClaims(token)
	if err != nil {
		return nil, err
	}

	return &accessTokenClaims{
		Subject:   token.Subject(),
		User:      user,
		ExpiresAt: token.Expiration(),
	}, nil
}

// UserFromClaims returns the user carried by the "user" claim of an access token.
func UserFromClaims(token jwt.Token) (*model.User, error) {
	claim, ok := token.Get("user")
	if !ok {
		return nil, errors.New("user not found in claims")
	}

	b, err := json.Marshal(claim)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := json.Unmarshal(b, user); err != nil {
		return nil, fmt.Errorf("malformed user claim: %v", err)
	}
	return user, nil
}

type refreshToken struct {
	SignedString string
	TokenId      string
	ExpiresIn    time.Duration
}

// GenerateRefreshToken returns an HS256 signed token identifying the user and, through its id, the entry in the
// refresh token store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func GenerateRefreshToken(user *model.User, secretKey string, expirationInSeconds int) (*refreshToken, error) {
	now := time.Now()
	expiresIn := time.Duration(expirationInSeconds) * time.Second
	tokenId := uuid.NewString()

	token, err := jwt.NewBuilder().
		JwtID(tokenId).
		IssuedAt(now).
		Expiration(now.Add(expiresIn)).
		Claim("userId", user.ID).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build refresh token: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secretKey)))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %v", err)
	}

	return &refreshToken{
		SignedString: string(signed),
		TokenId:      tokenId,
		ExpiresIn:    expiresIn,
	}, nil
}

type refreshTokenClaims struct {
	UserId    uint
	ID        string
	ExpiresIn time.Duration
	IssuedAt  int64
}

//goland:noinspection GoExportedFuncWithUnexportedType
func ValidateRefreshToken(tokenString string, secretKey string) (*refreshTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256, []byte(secretKey)),
	)
	if err != nil {
		return nil, err
	}

	userId, ok := token.Get("userId")
	if !ok {
		return nil, errors.New("userId not found in claims")
	}

	id, ok := token.Get(jwt.JwtIDKey)
	if !ok {
		return nil, fmt.Errorf("%s not found in claims", jwt.JwtIDKey)
	}

	uid, ok := userId.(float64)
	if !ok {
		return nil, fmt.Errorf("unexpected userId claim: %v", userId)
	}

	return &refreshTokenClaims{
		UserId:    uint(uid),
		ID:        fmt.Sprintf("%v", id),
		ExpiresIn: time.Until(token.Expiration()),
		IssuedAt:  token.IssuedAt().Unix(),
	}, nil
}
