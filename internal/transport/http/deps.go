package http

import (
	"github.com/nakliye-kontrol-api/internal/application/report"
	"github.com/nakliye-kontrol-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/nakliye-kontrol-api/internal/infrastructure/jwt"
	s3infra "github.com/nakliye-kontrol-api/internal/infrastructure/s3"
	"github.com/nakliye-kontrol-api/internal/infrastructure/smtp"
	"github.com/nakliye-kontrol-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     *dynamo.UserRepo
	CodeRepo     *dynamo.CodeRepo
	NakliyeRepo  *dynamo.NakliyeRepo
	DepositRepo  *dynamo.DepositRepo
	TempFileRepo *dynamo.TempFileRepo
	S3Store      *s3infra.Store
	Mailer       smtp.Mailer
	SMSSender    sns.SMSSender
	JWTProvider  *jwtinfra.Provider
	Renderer     report.Renderer
}
