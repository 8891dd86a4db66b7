package market

import "github.com/vietddude/codemarket/internal/core/domain"

// SeedListings returns the catalog used when nothing is persisted yet.
// Every call builds a fresh copy.
func SeedListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:          "1",
			Title:       "E-commerce Shopping Cart Component",
			Description: "A fully functional shopping cart with React hooks and context API",
			LongDescription: "This comprehensive e-commerce shopping cart solution is built with React and leverages the Context API for state management. " +
				"It provides a complete shopping experience from product browsing to checkout.\n\n" +
				"Features include:\n- Product listing with filtering and sorting\n- Add to cart functionality with quantity adjustments\n" +
				"- Persistent cart using local storage\n- Responsive design for all devices\n- Checkout process with form validation\n" +
				"- Order summary and confirmation\n\n" +
				"The code is well-documented and follows best practices for React development. " +
				"It's designed to be easily integrated into existing projects or used as a standalone solution.",
			Price:      0.05,
			Category:   domain.CategoryComponent,
			Language:   "JavaScript",
			Seller:     DefaultOwner,
			SellerName: "DevMaster",
			Rating:     4.8,
			Sales:      24,
			Reviews: []domain.Review{
				{ID: 1, User: "CodingPro", Rating: 5, Comment: "Excellent code quality and documentation!"},
				{ID: 2, User: "WebDev123", Rating: 4, Comment: "Works great, saved me a lot of time."},
				{ID: 3, User: "ReactFan", Rating: 5, Comment: "Perfect integration with my existing project."},
			},
			Features: []string{
				"Product listing with filtering",
				"Cart management with local storage",
				"Quantity adjustments",
				"Checkout flow",
				"Responsive design",
			},
			Includes:    []string{"Source code", "Documentation", "Example implementation", "6 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "2",
			Title:       "Authentication System",
			Description: "Complete auth system with JWT, refresh tokens, and role-based access",
			LongDescription: "A comprehensive authentication system built with Node.js, Express, and MongoDB. " +
				"This system handles user registration, login, password reset, and account management with security best practices.\n\n" +
				"Features include:\n- JWT-based authentication\n- Refresh token rotation\n- Role-based access control\n" +
				"- Password hashing with bcrypt\n- Email verification\n- Password reset functionality\n" +
				"- Account lockout after failed attempts\n\n" +
				"The system is designed to be secure, scalable, and easy to integrate into any application.",
			Price:      0.15,
			Category:   domain.CategoryFullSystem,
			Language:   "TypeScript",
			Seller:     DefaultOwner,
			SellerName: "SecurityExpert",
			Rating:     4.9,
			Sales:      56,
			Reviews: []domain.Review{
				{ID: 1, User: "BackendDev", Rating: 5, Comment: "Rock-solid security implementation!"},
				{ID: 2, User: "FullStackNinja", Rating: 5, Comment: "Saved me weeks of development time."},
				{ID: 3, User: "StartupCTO", Rating: 4, Comment: "Great system, easy to customize for our needs."},
			},
			Features: []string{
				"JWT authentication",
				"Refresh token rotation",
				"Role-based access control",
				"Password reset",
				"Email verification",
			},
			Includes:    []string{"Source code", "API documentation", "Integration guide", "12 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "3",
			Title:       "Data Visualization Dashboard",
			Description: "Interactive dashboard with charts, graphs and filters using D3.js",
			LongDescription: "A powerful data visualization dashboard built with D3.js and React. " +
				"This dashboard provides interactive charts, graphs, and filters to help users analyze and understand complex data sets.",
			Price:      0.08,
			Category:   domain.CategoryComponent,
			Language:   "JavaScript",
			Seller:     DefaultOwner,
			SellerName: "DataVizPro",
			Rating:     4.7,
			Sales:      18,
			Features: []string{
				"Interactive charts and graphs",
				"Data filtering and sorting",
				"Responsive design",
				"CSV/JSON data import",
				"Export to PNG/PDF",
			},
			Includes:    []string{"Source code", "Documentation", "Sample data", "3 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "4",
			Title:       "Real-time Chat Application",
			Description: "WebSocket-based chat with typing indicators and read receipts",
			LongDescription: "A complete real-time chat application built with Socket.io and React. " +
				"Features include typing indicators, read receipts, online status, and message history.",
			Price:       0.12,
			Category:    domain.CategoryFullSystem,
			Language:    "TypeScript",
			Seller:      DefaultOwner,
			SellerName:  "SocketMaster",
			Rating:      4.6,
			Sales:       32,
			Features:    []string{"Real-time messaging", "Typing indicators", "Read receipts", "Online status", "Message history"},
			Includes:    []string{"Frontend code", "Backend code", "Deployment guide", "6 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "5",
			Title:       "PDF Generation Utility",
			Description: "Server-side PDF generation with dynamic content and styling",
			LongDescription: "A utility for generating PDF documents on the server with dynamic content and styling. " +
				"Built with Node.js and PDF-lib.",
			Price:      0.04,
			Category:   domain.CategoryUtility,
			Language:   "JavaScript",
			Seller:     DefaultOwner,
			SellerName: "DocMaker",
			Rating:     4.5,
			Sales:      41,
			Features: []string{
				"Dynamic content generation",
				"Custom styling and branding",
				"Table and chart support",
				"Image embedding",
				"Password protection",
			},
			Includes:    []string{"Source code", "API documentation", "Example templates", "3 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "6",
			Title:       "Image Processing API",
			Description: "Serverless functions for image resizing, cropping, and optimization",
			LongDescription: "A set of serverless functions for image processing, including resizing, cropping, filtering, and optimization. " +
				"Built with Cloudinary and AWS Lambda.",
			Price:      0.07,
			Category:   domain.CategoryAPI,
			Language:   "Python",
			Seller:     DefaultOwner,
			SellerName: "CloudDev",
			Rating:     4.8,
			Sales:      29,
			Features: []string{
				"Image resizing and cropping",
				"Filters and effects",
				"Image optimization",
				"Face detection",
				"Batch processing",
			},
			Includes:    []string{"Source code", "API documentation", "Deployment guide", "6 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "7",
			Title:       "E-commerce Product Recommendation Engine",
			Description: "ML-based recommendation system for e-commerce platforms",
			LongDescription: "A machine learning-based recommendation engine for e-commerce platforms. " +
				"Uses collaborative filtering and content-based approaches to suggest products to users.",
			Price:      0.18,
			Category:   domain.CategoryFullSystem,
			Language:   "Python",
			Seller:     DefaultOwner,
			SellerName: "MLExpert",
			Rating:     4.9,
			Sales:      15,
			Features: []string{
				"Collaborative filtering",
				"Content-based recommendations",
				"User behavior analysis",
				"A/B testing framework",
				"Performance analytics",
			},
			Includes:    []string{"Source code", "Documentation", "Training data", "12 months support"},
			PurchasedBy: []string{},
		},
		{
			ID:          "8",
			Title:       "Subscription Payment System",
			Description: "Complete subscription billing system with Stripe integration",
			LongDescription: "A full-featured subscription billing system with Stripe integration. " +
				"Handles recurring payments, upgrades/downgrades, and billing management.",
			Price:      0.14,
			Category:   domain.CategoryFullSystem,
			Language:   "JavaScript",
			Seller:     DefaultOwner,
			SellerName: "FinTechDev",
			Rating:     4.7,
			Sales:      22,
			Features: []string{
				"Recurring billing",
				"Plan management",
				"Upgrade/downgrade handling",
				"Payment failure recovery",
				"Invoicing and receipts",
			},
			Includes:    []string{"Frontend code", "Backend code", "Stripe integration guide", "6 months support"},
			PurchasedBy: []string{},
		},
	}
}
