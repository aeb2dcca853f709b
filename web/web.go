// Package web provides the web server of the task manager panel, including
// HTTP/HTTPS serving, routing, templates and background job scheduling.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/taskmanager/taskmanager/config"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/util/common"
	"github.com/taskmanager/taskmanager/util/random"
	"github.com/taskmanager/taskmanager/web/cache"
	"github.com/taskmanager/taskmanager/web/controller"
	"github.com/taskmanager/taskmanager/web/global"
	"github.com/taskmanager/taskmanager/web/job"
	"github.com/taskmanager/taskmanager/web/locale"
	"github.com/taskmanager/taskmanager/web/middleware"
	"github.com/taskmanager/taskmanager/web/network"
	"github.com/taskmanager/taskmanager/web/service"
	"github.com/taskmanager/taskmanager/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

const shutdownTimeout = 5 * time.Second

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo reports the process start as modification time so that
// embedded assets get a usable Last-Modified header.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the panel's web server with its controllers, shared services and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	panel *controller.PanelController
	api   *controller.APIController

	auth   *service.AuthService
	sizing *cache.SizingStore
	store  sessions.Store

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	auth := service.NewAuthService()
	return &Server{
		auth:   auth,
		sizing: cache.NewSizingStore(auth.MaxAge()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// dict builds a map from key/value pairs so templates can pass several values to a partial.
func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, common.NewError("dict expects key/value pairs")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, common.NewErrorf("dict key %v is not a string", values[i])
		}
		m[key] = values[i+1]
	}
	return m, nil
}

// getHtmlFiles lists the templates under web/html; used in debug mode so
// that edits show up without a rebuild.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses every embedded template directory into one set.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// sessionStore keeps sessions in Redis when a client is connected and in the
// signed cookie otherwise.
func (s *Server) sessionStore(basePath string) sessions.Store {
	if s.store != nil {
		return s.store
	}
	secret := []byte(config.GetSecret())
	if len(secret) == 0 {
		logger.Warning("TM_SECRET is not set, sessions will not survive a restart")
		secret = random.Bytes(32)
	}

	var store sessions.Store
	if client := cache.GetClient(); client != nil {
		store = cache.NewRedisStore(client, secret)
	} else {
		store = cookie.NewStore(secret)
	}
	store.Options(session.Options(basePath, int(s.auth.MaxAge().Seconds())))
	s.store = store
	return store
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	engine := gin.Default()
	basePath := config.GetBasePath()

	// JSON responses are small and read by scripts; only pages and assets are compressed.
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "api/"}),
	))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})
	engine.Use(sessions.Sessions(session.Name, s.sessionStore(basePath)))
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.RedirectMiddleware(basePath))

	funcMap := template.FuncMap{
		"i18n": locale.T,
		"dict": dict,
	}
	engine.SetFuncMap(funcMap)

	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS(basePath+"assets", http.FS(os.DirFS("web/assets")))
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
		engine.StaticFS(basePath+"assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}

	base := controller.NewBaseController(s.auth, s.sizing)
	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g, base)
	s.panel = controller.NewPanelController(g, base)
	s.api = controller.NewAPIController(g, base)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the maintenance jobs.
func (s *Server) startTask() {
	cleanup := job.NewSessionCleanupJob(s.auth)
	if _, err := s.cron.AddJob("@every 10m", cleanup); err != nil {
		logger.Warning("add session cleanup job failed: ", err)
	}
	go cleanup.Run()

	if config.GetDatabaseConfig().IsSQLite() {
		if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob()); err != nil {
			logger.Warning("add checkpoint job failed: ", err)
		}
	}
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := config.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	if addr := config.GetRedisAddr(); addr != "" {
		if _, err := cache.InitRedis(s.ctx, addr); err != nil {
			return err
		}
	}

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	certFile, keyFile := config.GetCertFile(), config.GetKeyFile()
	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewAutoHttpsListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on ", listener.Addr())
		} else {
			logger.Error("Error loading certificates: ", err)
			logger.Info("Web server running HTTP on ", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on ", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped: ", err)
		}
	}()

	global.SetWebServer(s)
	s.startTask()
	return nil
}

// Stop shuts the web server down and stops the scheduled jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var errs []error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errs = append(errs, s.httpServer.Shutdown(ctx))
	} else if s.listener != nil {
		errs = append(errs, s.listener.Close())
	}
	errs = append(errs, cache.CloseRedis())
	return common.Combine(errs...)
}

func (s *Server) GetCtx() context.Context { return s.ctx }

func (s *Server) GetCron() *cron.Cron { return s.cron }
