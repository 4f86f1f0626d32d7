package seeder

import "portfolio-api/internal/domain/portfolio"

const (
	CategoryDataAnalytics   = "Data Analytics"
	CategoryMachineLearning = "Machine Learning"
)

// DefaultPortfolio returns the content used to initialize an empty store.
// The id and timestamps are left zero; callers stamp them before persisting.
func DefaultPortfolio() portfolio.Portfolio {
	return portfolio.Portfolio{
		Personal: portfolio.PersonalInfo{
			Name:     "Surabhi Santosh Pilane",
			Title:    "Final-Year Computer Engineering Student",
			Subtitle: "Focused on Data Science, Analytics & AI | Passionate about solving real-world problems through data.",
			Email:    "pilanesurabhi14@gmail.com",
			Phone:    "9326879089",
			Location: "Navi Mumbai",
			LinkedIn: "https://www.linkedin.com/in/surabhi-pilane-852a622b6",
			GitHub:   "https://github.com/surabhi1416",
		},
		Projects: []portfolio.Project{
			{
				ID:           1,
				Title:        "Sales Insights Dashboard",
				Description:  "Analyzed 10K+ records using Power BI for data-driven decision making.",
				Image:        "https://images.unsplash.com/photo-1551288049-bebda4e38f71?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2NzF8MHwxfHNlYXJjaHwxfHxkYXRhJTIwZGFzaGJvYXJkfGVufDB8fHx8MTc1MzU0MzUzM3ww&ixlib=rb-4.1.0&q=85",
				GitHub:       "https://github.com/surabhi1416/Sales-Insights-Using-PowerBi",
				Technologies: []string{"Power BI", "Data Analytics", "SQL"},
				Category:     CategoryDataAnalytics,
			},
			{
				ID:           2,
				Title:        "HR Data Analytics",
				Description:  "Visualized HR trends like attrition and salary using Power BI dashboards.",
				Image:        "https://images.unsplash.com/photo-1666875753105-c63a6f3bdc86?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2NzF8MHwxfHNlYXJjaHwyfHxkYXRhJTIwZGFzaGJvYXJkfGVufDB8fHx8MTc1MzU0MzUzM3ww&ixlib=rb-4.1.0&q=85",
				GitHub:       "https://github.com/surabhi1416/HR-DATA-ANALYTICS",
				Technologies: []string{"Power BI", "HR Analytics", "Data Visualization"},
				Category:     CategoryDataAnalytics,
			},
			{
				ID:           3,
				Title:        "Potato Disease Detection",
				Description:  "Used CNN with TensorFlow to detect potato leaf diseases from images.",
				Image:        "https://images.unsplash.com/photo-1557562645-4eee56b29bc1?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDk1NzZ8MHwxfHNlYXJjaHwxfHxtYWNoaW5lJTIwbGVhcm5pbmd8ZW58MHx8fHwxNzUzNTQzNTQ2fDA&ixlib=rb-4.1.0&q=85",
				GitHub:       "https://github.com/surabhi1416/Potato_leafs_detection_project/tree/main",
				Technologies: []string{"TensorFlow", "CNN", "Image Processing", "Python"},
				Category:     CategoryMachineLearning,
			},
			{
				ID:           4,
				Title:        "Indian City GDP Analysis",
				Description:  "Created Power BI dashboard highlighting economic zones & trends.",
				Image:        "https://images.unsplash.com/photo-1585123607190-72ec2979a269?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2NzZ8MHwxfHNlYXJjaHwyfHxhbmFseXRpY3MlMjB2aXN1YWxpemF0aW9ufGVufDB8fHx8MTc1MzU0MzU0MHww&ixlib=rb-4.1.0&q=85",
				GitHub:       "https://github.com/surabhi1416/INDIAN-CITIES-GDP-ANALYSIS",
				Technologies: []string{"Power BI", "Economic Analysis", "Data Visualization"},
				Category:     CategoryDataAnalytics,
			},
			{
				ID:           5,
				Title:        "Network Intrusion Detection System",
				Description:  "Built ML models (SVM, Random Forest) to detect anomalies with 90%+ accuracy.",
				Image:        "https://images.unsplash.com/photo-1495592822108-9e6261896da8?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDk1NzZ8MHwxfHNlYXJjaHwzfHxtYWNoaW5lJTIwbGVhcm5pbmd8ZW58MHx8fHwxNzUzNTQzNTQ2fDA&ixlib=rb-4.1.0&q=85",
				GitHub:       "https://github.com/surabhi1416/Network_Intrusion_Detection_System-",
				Technologies: []string{"SVM", "Random Forest", "Anomaly Detection", "Python"},
				Category:     CategoryMachineLearning,
			},
		},
		Experience: []portfolio.Experience{
			{
				ID:           1,
				Title:        "Data Visualization Intern",
				Company:      "Infosys Springboard",
				Duration:     "Feb 2024 – Apr 2024",
				Description:  "Developed Power BI dashboards for GDP trends using public datasets and Power Query.",
				Technologies: []string{"Power BI", "Power Query", "Data Visualization"},
			},
			{
				ID:           2,
				Title:        "AI/ML Intern",
				Company:      "ONGC",
				Duration:     "June 2024 – July 2024",
				Description:  "Worked on ML-based anomaly detection system (NIDS) using SVM and Random Forest.",
				Technologies: []string{"Machine Learning", "SVM", "Random Forest", "Python"},
			},
		},
	}
}
