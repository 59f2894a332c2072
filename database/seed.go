package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed replaces every project and skill category with the sample data set.
// It runs in a single transaction, so a failure leaves the tables untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	projects := sampleProjects()
	categories := sampleSkillCategories()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("clear projects: %w", err)
		}
		if err := wipe.Delete(&models.SkillCategory{}).Error; err != nil {
			return fmt.Errorf("clear skill categories: %w", err)
		}

		if err := tx.Create(&projects).Error; err != nil {
			return fmt.Errorf("insert projects: %w", err)
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("insert skill categories: %w", err)
		}
		return nil
	})
}

func sampleProjects() []*models.Project {
	projects := []*models.Project{
		{
			Title:        "E-Commerce Platform",
			Description:  "A full-stack e-commerce solution built with Next.js, featuring user authentication, payment integration, and admin dashboard.",
			Link:         "https://github.com",
			Technologies: datatypes.JSONSlice[string]{"Next.js", "MongoDB", "Stripe", "Tailwind CSS"},
			Image:        "/project1.jpg",
			Status:       models.ProjectStatusCompleted,
			Featured:     true,
		},
		{
			Title:        "Task Management App",
			Description:  "A collaborative task management application with real-time updates, drag-and-drop functionality, and team collaboration features.",
			Link:         "https://github.com",
			Technologies: datatypes.JSONSlice[string]{"React", "Node.js", "Socket.io", "PostgreSQL"},
			Image:        "/project2.jpg",
			Status:       models.ProjectStatusCompleted,
		},
		{
			Title:        "Weather Dashboard",
			Description:  "A responsive weather application that provides real-time weather data, forecasts, and interactive maps using external APIs.",
			Link:         "https://github.com",
			Technologies: datatypes.JSONSlice[string]{"React", "Weather API", "Chart.js", "CSS3"},
			Image:        "/project3.jpg",
			Status:       models.ProjectStatusCompleted,
		},
		{
			Title:        "Social Media Platform",
			Description:  "A modern social media platform with posts, comments, likes, and real-time messaging functionality.",
			Link:         "https://github.com",
			Technologies: datatypes.JSONSlice[string]{"MERN Stack", "Socket.io", "AWS S3", "JWT"},
			Image:        "/project4.jpg",
			Status:       models.ProjectStatusInProgress,
			Featured:     true,
		},
		{
			Title:        "Portfolio Website",
			Description:  "A modern, responsive portfolio website showcasing projects and skills with smooth animations and modern UI design.",
			Link:         "https://github.com",
			Technologies: datatypes.JSONSlice[string]{"Next.js", "Tailwind CSS", "Framer Motion"},
			Image:        "/project5.jpg",
			Status:       models.ProjectStatusCompleted,
		},
		{
			Title:        "Learning Management System",
			Description:  "An educational platform for online courses with video streaming, progress tracking, and interactive quizzes.",
			Link:         "https://github.com",
			Technologies: datatypes.JSONSlice[string]{"Next.js", "MongoDB", "Video.js", "Stripe"},
			Image:        "/project6.jpg",
			Status:       models.ProjectStatusInProgress,
		},
	}
	for _, p := range projects {
		p.Normalize()
		p.TouchUpdatedAt()
	}
	return projects
}

func sampleSkillCategories() []*models.SkillCategory {
	categories := []*models.SkillCategory{
		{
			Category: "Frontend Development",
			Order:    1,
			Items: datatypes.JSONSlice[models.SkillItem]{
				{Name: "HTML5", Color: "bg-orange-500"},
				{Name: "CSS3", Color: "bg-blue-500"},
				{Name: "JavaScript", Color: "bg-yellow-500"},
				{Name: "React.js", Color: "bg-cyan-500"},
				{Name: "Next.js", Color: "bg-gray-800"},
				{Name: "Tailwind CSS", Color: "bg-teal-500"},
			},
		},
		{
			Category: "Backend Development",
			Order:    2,
			Items: datatypes.JSONSlice[models.SkillItem]{
				{Name: "Node.js", Color: "bg-green-600"},
				{Name: "MongoDB", Color: "bg-green-500"},
				{Name: "Express.js", Color: "bg-gray-700"},
				{Name: "API Development", Color: "bg-purple-500"},
			},
		},
		{
			Category: "Tools & Technologies",
			Order:    3,
			Items: datatypes.JSONSlice[models.SkillItem]{
				{Name: "Git", Color: "bg-red-500"},
				{Name: "GitHub", Color: "bg-gray-800"},
				{Name: "VS Code", Color: "bg-blue-600"},
				{Name: "Responsive Design", Color: "bg-pink-500"},
			},
		},
	}
	for _, c := range categories {
		c.Normalize()
		c.TouchUpdatedAt()
	}
	return categories
}
