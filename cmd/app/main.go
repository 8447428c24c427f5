package main

import (
	"fmt"
	"log/slog"
	"os"

	"parceltrack/cmd"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := connectDB(configs)

	app := cmd.NewCompositionRoot(configs, db)

	startJobs(&app, configs)

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:        goDotEnvVariable("JWT_SECRET"),
		StatsJobSchedule: goDotEnvVariable("STATS_JOB_SCHEDULE"),
	}
	if config.StatsJobSchedule == "" {
		config.StatsJobSchedule = "0 * * * *"
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the repositories map to Conflict.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusHistoryDTO{},
		&userrepo.UserDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) {
	statsHandler, err := app.CreateParcelStatsQueryHandler()
	if err != nil {
		log.Fatalf("Error creating stats handler: %v", err)
	}

	jobManager := jobs.NewJobManager(statsHandler, configs.StatsJobSchedule, slog.Default())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
