package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(repos repositories, r router) *routeHandlers {
	return &routeHandlers{
		authHandler:          newAuthHandler(r.jwtSecret, r.adminPasswordHash),
		healthHandler:        newHealthHandler(repos.health, r.startupTime),
		contactHandler:       newContactHandler(repos.contacts, r.notifier),
		projectHandler:       newProjectHandler(repos.projects),
		skillCategoryHandler: newSkillCategoryHandler(repos.skillCategories),
	}
}
