package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed views
var viewsFS embed.FS

// Options configures the shell application.
type Options struct {
	Logger *zap.Logger
	// JWTSecret enables signature verification of the session token when set.
	JWTSecret string
	// Development reloads templates on every render.
	Development bool
	// CORSOrigins is a comma separated origin list; empty disables CORS.
	CORSOrigins string
}

// BodyLimit caps request bodies. It sits well above the photo limit so an
// oversized photo still reaches form validation.
const BodyLimit = 32 * 1024 * 1024

// New builds the Fiber app with views, middleware and the global error
// handler installed. Feature handlers register their routes afterwards.
func New(opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.Reload(opts.Development)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          ErrorHandler(opts.Logger),
		DisableStartupMessage: true,
		BodyLimit:             BodyLimit,
	})

	app.Use(recover.New())
	if opts.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     "GET,POST,HEAD",
			AllowHeaders:     "Origin, Content-Type, Accept, X-Requested-With",
			AllowCredentials: opts.CORSOrigins != "*",
		}))
	}
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(requestLogger(opts.Logger))
	app.Use(loadSession)
	if opts.JWTSecret != "" {
		app.Use(jwtware.New(jwtware.Config{
			SigningKey:  []byte(opts.JWTSecret),
			TokenLookup: "cookie:token",
			Filter:      func(c *fiber.Ctx) bool { return IsPublicPath(c.Path()) },
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				opts.Logger.Info("rejected session token", zap.Error(err))
				return expireSession(c)
			},
		}))
	}
	app.Use(requireSession)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/", home)

	return app
}

var publicPaths = map[string]bool{"/login": true, "/logout": true, "/healthz": true}

// IsPublicPath reports whether path is reachable without a session.
func IsPublicPath(path string) bool {
	return publicPaths[path] || strings.HasPrefix(path, "/auth/")
}

func home(c *fiber.Ctx) error {
	return Render(c, "home", "Menú Principal", fiber.Map{
		"Options": []fiber.Map{
			{"Title": "Crear Personas", "Href": "/personas/crear", "Color": "#3A7BD5"},
			{"Title": "Modificar Datos", "Href": "/personas", "Color": "#F4B400"},
			{"Title": "Consultar Datos", "Href": "/personas", "Color": "#34A853"},
			{"Title": "Consulta Lenguaje Natural", "Href": "/rag", "Color": "#1F4E79"},
			{"Title": "Borrar Personas", "Href": "/personas", "Color": "#EA4335"},
			{"Title": "Consultar Log", "Href": "/logs", "Color": "#0A2240"},
		},
	})
}
