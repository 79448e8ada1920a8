package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"innovation-gallery-backend/internal/config"
	"innovation-gallery-backend/internal/database"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/handlers"
	"innovation-gallery-backend/internal/middleware"
	"innovation-gallery-backend/internal/services"
	"innovation-gallery-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations over a direct connection when one is configured. The
	// normal data path goes through PostgREST.
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
	} else {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize migrator: %v", err)
		} else {
			defer migrator.Close()
			if err := migrator.Run(); err != nil {
				log.Printf("Warning: Migration failed: %v", err)
			} else {
				log.Println("Migrations completed successfully")
			}
		}
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	store := datastore.NewStore(supabaseClient)
	importer := services.NewImporter(store)

	galleryHandler := handlers.NewGalleryHandler(store, storageClient)
	projectsHandler := handlers.NewProjectsHandler(store, storageClient, realtimeClient)
	studentsHandler := handlers.NewStudentsHandler(store, importer)
	interestHandler := handlers.NewInterestHandler(store, realtimeClient)
	taxonomyHandler := handlers.NewTaxonomyHandler(store)
	tablesHandler := handlers.NewTablesHandler(store)
	optionsHandler := handlers.NewOptionsHandler(store)

	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public routes: the gallery and the interest form work for guests.
	public := router.Group("/api/v1")
	public.Use(middleware.OptionalAuth(cfg))
	public.GET("/gallery", galleryHandler.List)
	public.GET("/gallery/:project_id", galleryHandler.Get)
	public.POST("/interest", interestHandler.Create)
	public.GET("/degrees", taxonomyHandler.ListDegrees)
	public.GET("/tags", taxonomyHandler.ListTags)
	public.GET("/contact-reasons", taxonomyHandler.ListReasons)
	public.GET("/projects/:project_id", projectsHandler.GetProject)

	// Authenticated routes: students submitting and editing their projects.
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.POST("/projects", projectsHandler.SubmitProject)
	api.PUT("/projects/:project_id", projectsHandler.UpdateProject)
	api.GET("/students/me", studentsHandler.Me)
	api.PUT("/students/:student_id", studentsHandler.Update)
	api.GET("/options/tags", optionsHandler.Tags)
	api.GET("/options/students", optionsHandler.Students)
	api.GET("/options/degrees", optionsHandler.Degrees)

	// Staff routes: moderation, triage, directories, lookup tables.
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.RequireGroups(middleware.GroupAdmins, middleware.GroupModerator))

	admin.GET("/tables/projects", tablesHandler.Projects)
	admin.GET("/tables/clients", tablesHandler.Clients)
	admin.GET("/tables/students", tablesHandler.Students)
	admin.GET("/tables/degrees", tablesHandler.Degrees)
	admin.GET("/tables/tags", tablesHandler.Tags)
	admin.GET("/tables/contact-reasons", tablesHandler.Reasons)

	admin.POST("/projects/:project_id/approve", projectsHandler.Approve)
	admin.POST("/projects/:project_id/reject", projectsHandler.Reject)
	admin.PUT("/projects/:project_id/comments", projectsHandler.UpdateComments)
	admin.GET("/projects/:project_id/students", projectsHandler.ListCollaborators)
	admin.DELETE("/projects/:project_id", projectsHandler.Delete)

	admin.GET("/interest/:interest_id", interestHandler.Get)
	admin.PUT("/interest/:interest_id", interestHandler.Triage)
	admin.DELETE("/interest/:interest_id", interestHandler.Delete)

	admin.POST("/students", studentsHandler.Create)
	admin.GET("/students/:student_id", studentsHandler.Get)
	admin.DELETE("/students/:student_id", studentsHandler.Delete)
	admin.POST("/students/import", studentsHandler.ImportCSV)

	admin.POST("/degrees", taxonomyHandler.CreateDegree)
	admin.DELETE("/degrees/:degree_id", taxonomyHandler.DeleteDegree)
	admin.POST("/tags", taxonomyHandler.CreateTag)
	admin.DELETE("/tags/:tag_id", taxonomyHandler.DeleteTag)
	admin.POST("/contact-reasons", taxonomyHandler.CreateReason)
	admin.DELETE("/contact-reasons/:reason_id", taxonomyHandler.DeleteReason)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
