package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trackhub/backend/database"
	"trackhub/backend/models"
	"trackhub/backend/services"
)

// Seeds a handful of demo records across the three apps so the front-ends
// have something to render on a fresh install.
func main() {
	_ = godotenv.Load()

	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	app := services.NewController(services.DBStore{}, logger)
	if err := app.LoadState(); err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	if len(app.Students(models.StudentQuery{}, models.SortSpec{})) > 0 {
		fmt.Println("State already seeded, nothing to do.")
		os.Exit(0)
	}

	students := []models.Student{
		{Name: "Sarah Mitchell", Email: "sarah@example.com", GradeLevel: "10", ParentName: "Joan Mitchell"},
		{Name: "Patrick Doyle", Email: "patrick@example.com", GradeLevel: "10", ParentName: "Mary Doyle"},
		{Name: "Amina Khalid", Email: "amina@example.com", GradeLevel: "11", ParentName: "Yusuf Khalid"},
	}
	var ids []string
	for _, s := range students {
		created, err := app.AddStudent(s)
		if err != nil {
			log.Fatalf("Failed to seed student: %v", err)
		}
		ids = append(ids, created.ID)
	}

	for i, score := range []float64{92, 81, 70} {
		_, err := app.AddGrade(models.Grade{
			StudentID: ids[0],
			Subject:   "Math",
			Score:     score,
			Date:      fmt.Sprintf("2025-01-%02d", 10+i*5),
		})
		if err != nil {
			log.Fatalf("Failed to seed grade: %v", err)
		}
	}

	for _, id := range ids {
		_, err := app.RecordAttendance(models.AttendanceRecord{
			StudentID: id,
			Date:      "2025-01-15",
			Status:    models.AttendancePresent,
		})
		if err != nil {
			log.Fatalf("Failed to seed attendance: %v", err)
		}
	}

	if _, err := app.AddAssignment(models.Assignment{
		Title:   "Algebra worksheet",
		DueDate: "2025-01-31",
	}); err != nil {
		log.Fatalf("Failed to seed assignment: %v", err)
	}

	product, err := app.AddProduct(models.Product{
		Name: "Hex bolts M8", SKU: "HB-M8", Category: "fasteners", Quantity: 50, Location: "A1",
	})
	if err != nil {
		log.Fatalf("Failed to seed product: %v", err)
	}
	if _, err := app.RecordMovement(models.InventoryMovement{
		ProductID: product.ID, Type: models.MovementIn, Quantity: 25, Reason: "restock", Date: "2025-01-10",
	}); err != nil {
		log.Fatalf("Failed to seed movement: %v", err)
	}

	if _, err := app.AddAppointment(models.Appointment{
		CustomerName: "Dana Reyes",
		Vehicle:      "2014 Civic",
		ServiceType:  "brake inspection",
		Date:         "2025-02-01",
		Priority:     models.PriorityHigh,
	}); err != nil {
		log.Fatalf("Failed to seed appointment: %v", err)
	}

	fmt.Println("Seed data written successfully!")
}
