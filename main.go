package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trackhub/backend/database"
	"trackhub/backend/handlers"
	"trackhub/backend/middleware"
	"trackhub/backend/services"
)

func main() {
	// .env is optional; real deployments set the variables directly
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()

	if err := database.InitDB(); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	app := services.NewController(services.DBStore{}, logger)
	if err := app.LoadState(); err != nil {
		logger.Fatal("failed to load state", zap.Error(err))
	}
	handlers.App = app
	handlers.Logger = logger

	backupDir := os.Getenv("BACKUP_DIR")
	if backupDir == "" {
		backupDir = "./backups"
	}
	services.StartScheduler(app, backupDir)

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to keep the
	// front-end clients compatible
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve the bundled front-end builds from the "dist" directory
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			logger.Debug("serving index.html", zap.String("path", r.URL.Path))
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	logger.Info("starting server", zap.String("port", port))
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	if os.Getenv("ENV") != "production" {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Student tracker
	r.HandleFunc("/students", handlers.GetStudents).Methods("GET")
	r.HandleFunc("/students", handlers.AddStudent).Methods("POST")
	r.HandleFunc("/students/{id}", handlers.UpdateStudent).Methods("PUT")
	r.HandleFunc("/students/{id}", handlers.DeleteStudent).Methods("DELETE")

	r.HandleFunc("/grades", handlers.GetGrades).Methods("GET")
	r.HandleFunc("/grades", handlers.AddGrade).Methods("POST")
	r.HandleFunc("/grades/{id}", handlers.UpdateGrade).Methods("PUT")
	r.HandleFunc("/grades/{id}", handlers.DeleteGrade).Methods("DELETE")

	r.HandleFunc("/attendance", handlers.GetAttendance).Methods("GET")
	r.HandleFunc("/attendance", handlers.RecordAttendance).Methods("POST")
	r.HandleFunc("/attendance/{id}", handlers.DeleteAttendance).Methods("DELETE")

	r.HandleFunc("/assignments", handlers.GetAssignments).Methods("GET")
	r.HandleFunc("/assignments", handlers.AddAssignment).Methods("POST")
	r.HandleFunc("/assignments/{id}", handlers.UpdateAssignment).Methods("PUT")
	r.HandleFunc("/assignments/{id}", handlers.DeleteAssignment).Methods("DELETE")
	r.HandleFunc("/assignments/{id}/completions/{studentId}", handlers.SetCompletionStatus).Methods("PUT")
	r.HandleFunc("/assignments/{id}/backfill", handlers.BackfillCompletions).Methods("POST")

	r.HandleFunc("/messages", handlers.GetMessages).Methods("GET")
	r.HandleFunc("/messages", handlers.AddMessage).Methods("POST")
	r.HandleFunc("/messages/{id}/read", handlers.MarkMessageRead).Methods("PUT")
	r.HandleFunc("/messages/{id}", handlers.DeleteMessage).Methods("DELETE")

	r.HandleFunc("/conferences", handlers.GetConferences).Methods("GET")
	r.HandleFunc("/conferences", handlers.AddConference).Methods("POST")
	r.HandleFunc("/conferences/{id}/status", handlers.SetConferenceStatus).Methods("PUT")
	r.HandleFunc("/conferences/{id}", handlers.DeleteConference).Methods("DELETE")

	// Academic analytics and reports
	r.HandleFunc("/analytics/grades", handlers.GetGradeDistribution).Methods("GET")
	r.HandleFunc("/analytics/attendance", handlers.GetAttendanceOverview).Methods("GET")
	r.HandleFunc("/analytics/assignments", handlers.GetCompletionOverview).Methods("GET")
	r.HandleFunc("/analytics/trends", handlers.GetAttendanceTrends).Methods("GET")
	r.HandleFunc("/reports/student", handlers.RunStudentReport).Methods("POST")
	r.HandleFunc("/reports/attendance", handlers.RunAttendanceReport).Methods("POST")

	// Saved reports
	r.HandleFunc("/reports/saved", handlers.GetSavedReports).Methods("GET")
	r.HandleFunc("/reports/saved", handlers.CreateSavedReport).Methods("POST")
	r.HandleFunc("/reports/saved/{id}", handlers.GetSavedReport).Methods("GET")
	r.HandleFunc("/reports/saved/{id}", handlers.UpdateSavedReport).Methods("PUT")
	r.HandleFunc("/reports/saved/{id}", handlers.DeleteSavedReport).Methods("DELETE")
	r.HandleFunc("/reports/saved/{id}/run", handlers.RerunSavedReport).Methods("POST")

	// Warehouse inventory
	r.HandleFunc("/products", handlers.GetProducts).Methods("GET")
	r.HandleFunc("/products", handlers.AddProduct).Methods("POST")
	r.HandleFunc("/products/{id}", handlers.UpdateProduct).Methods("PUT")
	r.HandleFunc("/products/{id}", handlers.DeleteProduct).Methods("DELETE")
	r.HandleFunc("/movements", handlers.GetMovements).Methods("GET")
	r.HandleFunc("/movements", handlers.RecordMovement).Methods("POST")
	r.HandleFunc("/inventory/summary", handlers.GetMovementSummary).Methods("GET")
	r.HandleFunc("/inventory/dashboard", handlers.GetInventoryDashboard).Methods("GET")

	// Auto-service shop
	r.HandleFunc("/appointments", handlers.GetAppointments).Methods("GET")
	r.HandleFunc("/appointments", handlers.AddAppointment).Methods("POST")
	r.HandleFunc("/appointments/{id}", handlers.UpdateAppointment).Methods("PUT")
	r.HandleFunc("/appointments/{id}", handlers.DeleteAppointment).Methods("DELETE")
	r.HandleFunc("/appointments/{id}/complete", handlers.CompleteAppointment).Methods("POST")
	r.HandleFunc("/service-records", handlers.GetServiceHistory).Methods("GET")
	r.HandleFunc("/service-records", handlers.AddServiceRecord).Methods("POST")
	r.HandleFunc("/service-records/{id}", handlers.DeleteServiceRecord).Methods("DELETE")
	r.HandleFunc("/garage/stats", handlers.GetGarageStats).Methods("GET")

	// Import/export
	r.HandleFunc("/export/{collection}", handlers.ExportCollection).Methods("GET")
	r.HandleFunc("/import/{collection}", handlers.ImportCollection).Methods("POST")
}
