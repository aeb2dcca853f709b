package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/taskmanager/taskmanager/config"
	"github.com/taskmanager/taskmanager/database"
	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web"
	"github.com/taskmanager/taskmanager/web/service"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func initDB() error {
	cfg := config.GetDatabaseConfig()
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return err
	}
	return database.InitDB(cfg)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err: ", err)
		}
	}()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		logger.Error("start server err: ", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err: ", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				logger.Error("restart server err: ", err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err: ", err)
			}
			return
		}
	}
}

func seed() error {
	if err := initDB(); err != nil {
		return err
	}
	defer database.CloseDB()
	if err := database.Seed(context.Background()); err != nil {
		return err
	}
	fmt.Println("seed data created")
	return nil
}

func showSetting() {
	db := config.GetDatabaseConfig()
	fmt.Println("current panel settings as follows:")
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("base path:", config.GetBasePath())
	fmt.Println("database:", db)
	fmt.Println("redis:", config.GetRedisAddr())
	fmt.Println("session max age:", config.GetSessionMaxAge())
	fmt.Println("session update age:", config.GetSessionUpdateAge())
	fmt.Println("tls:", config.GetCertFile() != "")
}

func createUser(name, email, password string, admin bool) error {
	if err := initDB(); err != nil {
		return err
	}
	defer database.CloseDB()

	in := service.UserCreate{Name: name, Email: email, Password: password, Role: model.RoleUser}
	if admin {
		in.Role = model.RoleAdmin
	}
	userService := service.UserService{}
	user, err := userService.InsertUser(context.Background(), in)
	if err != nil {
		return err
	}
	fmt.Printf("created %s user %s (%s)\n", user.Role, user.Email, user.Id)
	return nil
}

func main() {
	var rootCmd = &cobra.Command{
		Use:          config.GetName(),
		Short:        "User management panel",
		SilenceUsage: true,
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Replace all users with the sample administrator and user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a user with a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			admin, _ := cmd.Flags().GetBool("admin")
			return createUser(name, email, password, admin)
		},
	}

	createCmd.Flags().String("name", "", "display name")
	createCmd.Flags().String("email", "", "login e-mail")
	createCmd.Flags().String("password", "", "login password, 8 to 72 bytes")
	createCmd.Flags().Bool("admin", false, "grant the administrator role")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	settingCmd.AddCommand(showCmd)
	userCmd.AddCommand(createCmd)
	rootCmd.AddCommand(runCmd, seedCmd, settingCmd, userCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
