package catalog

import (
	"time"

	"github.com/dukex/agentflow/pkg/models"
)

func defaultDocument() Document {
	return Document{
		Agents:          defaultAgents(),
		Templates:       defaultTemplates(),
		WorkflowSteps:   defaultWorkflowSteps(),
		StepPalette:     defaultStepPalette(),
		Categories:      defaultCategories(),
		AgentCategories: defaultAgentCategories(),
		PromptPresets:   defaultPromptPresets(),
		ExecutionLogs:   defaultExecutionLogs(),
	}
}

func defaultAgents() []models.Agent {
	return []models.Agent{
		{
			ID:          1,
			Name:        "Google Sheets Auto-Updater",
			Description: "Automatically add new form submissions to Google Sheets",
			Status:      models.AgentStatusActive,
			LastRun:     "2 hours ago",
			Category:    "productivity",
			Template:    "google-sheets",
			Runs:        1247,
			Prompt:      "Create an agent that monitors form submissions and adds them to a Google Sheet with proper formatting and validation.",
		},
		{
			ID:          2,
			Name:        "GitHub Issue Tracker",
			Description: "Create Linear issues from GitHub issues automatically",
			Status:      models.AgentStatusActive,
			LastRun:     "5 minutes ago",
			Category:    "development",
			Template:    "github-linear",
			Runs:        856,
			Prompt:      "Monitor GitHub issues and automatically create corresponding Linear issues with proper labeling and assignment.",
		},
		{
			ID:          3,
			Name:        "Stripe Customer Manager",
			Description: "Add new Stripe customers to HubSpot CRM",
			Status:      models.AgentStatusPaused,
			LastRun:     "1 day ago",
			Category:    "sales",
			Template:    "stripe-hubspot",
			Runs:        432,
			Prompt:      "When a new customer is added to Stripe, automatically create a contact in HubSpot with relevant customer data.",
		},
		{
			ID:          4,
			Name:        "Brand Monitor",
			Description: "Monitor brand mentions across social media",
			Status:      models.AgentStatusActive,
			LastRun:     "10 minutes ago",
			Category:    "marketing",
			Template:    "brand-monitoring",
			Runs:        2341,
			Prompt:      "Track brand mentions on Twitter, Reddit, and news sites, then send notifications for significant mentions.",
		},
		{
			ID:          5,
			Name:        "Email Categorizer",
			Description: "Automatically categorize and prioritize emails",
			Status:      models.AgentStatusActive,
			LastRun:     "1 hour ago",
			Category:    "productivity",
			Template:    "email-categorization",
			Runs:        1876,
			Prompt:      "Analyze incoming emails and categorize them by priority and type, then route to appropriate team members.",
		},
	}
}

func defaultTemplates() []models.Template {
	return []models.Template{
		{
			ID: 1, Name: "Google Sheets Integration", Description: "Add rows to Google Sheets from various data sources",
			Category: "productivity", Icon: "📊", Difficulty: models.DifficultyEasy, EstimatedTime: "2 minutes",
			Tags:          []string{"google-sheets", "automation", "data"},
			DefaultPrompt: "Create an agent that adds new data to a Google Sheet whenever a specific event occurs.",
		},
		{
			ID: 2, Name: "GitHub to Linear", Description: "Create Linear issues from GitHub issues",
			Category: "development", Icon: "🔗", Difficulty: models.DifficultyMedium, EstimatedTime: "5 minutes",
			Tags:          []string{"github", "linear", "project-management"},
			DefaultPrompt: "Monitor GitHub issues and automatically create corresponding Linear issues with proper formatting.",
		},
		{
			ID: 3, Name: "Stripe to HubSpot", Description: "Sync Stripe customers with HubSpot CRM",
			Category: "sales", Icon: "💰", Difficulty: models.DifficultyMedium, EstimatedTime: "4 minutes",
			Tags:          []string{"stripe", "hubspot", "crm"},
			DefaultPrompt: "When a new customer is added to Stripe, create a contact in HubSpot with all relevant information.",
		},
		{
			ID: 4, Name: "Webhook Proxy", Description: "Receive and process webhook data",
			Category: "development", Icon: "🔗", Difficulty: models.DifficultyEasy, EstimatedTime: "1 minute",
			Tags:          []string{"webhook", "api", "integration"},
			DefaultPrompt: "Create a webhook endpoint that receives data and processes it according to custom rules.",
		},
		{
			ID: 5, Name: "Daily Calendar Summary", Description: "Get daily calendar summaries via email",
			Category: "productivity", Icon: "📅", Difficulty: models.DifficultyEasy, EstimatedTime: "3 minutes",
			Tags:          []string{"calendar", "email", "daily-summary"},
			DefaultPrompt: "Send a daily email summary of calendar events with key details and preparation notes.",
		},
		{
			ID: 6, Name: "Brand Monitoring", Description: "Monitor brand mentions across platforms",
			Category: "marketing", Icon: "🔍", Difficulty: models.DifficultyHard, EstimatedTime: "10 minutes",
			Tags:          []string{"monitoring", "social-media", "alerts"},
			DefaultPrompt: "Track brand mentions on social media and news sites, then send alerts for important mentions.",
		},
		{
			ID: 7, Name: "Email Categorization", Description: "Automatically categorize and prioritize emails",
			Category: "productivity", Icon: "📧", Difficulty: models.DifficultyMedium, EstimatedTime: "6 minutes",
			Tags:          []string{"email", "ai", "automation"},
			DefaultPrompt: "Analyze incoming emails and categorize them by priority and type using AI.",
		},
		{
			ID: 8, Name: "Tweetstorm Generator", Description: "Generate Twitter thread content",
			Category: "content", Icon: "🐦", Difficulty: models.DifficultyMedium, EstimatedTime: "5 minutes",
			Tags:          []string{"twitter", "content", "ai"},
			DefaultPrompt: "Generate engaging Twitter threads on specific topics with proper formatting and hashtags.",
		},
		{
			ID: 9, Name: "Earnings Call Summaries", Description: "Summarize earnings call transcripts",
			Category: "finance", Icon: "📈", Difficulty: models.DifficultyHard, EstimatedTime: "8 minutes",
			Tags:          []string{"finance", "ai", "analysis"},
			DefaultPrompt: "Analyze earnings call transcripts and generate concise summaries with key insights.",
		},
		{
			ID: 10, Name: "User Signup Analytics", Description: "Track and analyze new user signups",
			Category: "analytics", Icon: "👥", Difficulty: models.DifficultyMedium, EstimatedTime: "4 minutes",
			Tags:          []string{"analytics", "users", "tracking"},
			DefaultPrompt: "Monitor new user signups and generate analytics reports with insights and trends.",
		},
		{
			ID: 11, Name: "AI Model Monitoring", Description: "Monitor AI model performance",
			Category: "ai", Icon: "🤖", Difficulty: models.DifficultyHard, EstimatedTime: "12 minutes",
			Tags:          []string{"ai", "monitoring", "performance"},
			DefaultPrompt: "Track AI model performance metrics and send alerts when performance degrades.",
		},
		{
			ID: 12, Name: "Product Drop Alerts", Description: "Get notified about new product releases",
			Category: "ecommerce", Icon: "👟", Difficulty: models.DifficultyMedium, EstimatedTime: "7 minutes",
			Tags:          []string{"ecommerce", "alerts", "products"},
			DefaultPrompt: "Monitor specific product pages and send notifications when new items are released.",
		},
	}
}

func defaultWorkflowSteps() []models.WorkflowStep {
	return []models.WorkflowStep{
		{
			ID: 1, Type: models.StepTypeTrigger, Title: "Form Submission", Description: "When a form is submitted", Icon: "📝",
			Config: models.TriggerConfig{Source: "web-form", URL: "https://example.com/contact"},
		},
		{
			ID: 2, Type: models.StepTypeAction, Title: "AI Processing", Description: "Process data with AI", Icon: "🤖",
			Config: models.ActionConfig{Model: "deepseek-r1", Prompt: "Extract key information from form data"},
		},
		{
			ID: 3, Type: models.StepTypeAction, Title: "Add to Google Sheets", Description: "Add row to spreadsheet", Icon: "📊",
			Config: models.ActionConfig{SpreadsheetID: "1ABC...", Worksheet: "Contacts"},
		},
	}
}

func defaultStepPalette() []models.PaletteStep {
	return []models.PaletteStep{
		{Type: models.StepTypeTrigger, Title: "Webhook", Description: "Receive HTTP requests", Icon: "🔗"},
		{Type: models.StepTypeTrigger, Title: "Schedule", Description: "Run on a schedule", Icon: "⏰"},
		{Type: models.StepTypeTrigger, Title: "Form Submit", Description: "When form is submitted", Icon: "📝"},
		{Type: models.StepTypeAction, Title: "AI Processing", Description: "Process with AI", Icon: "🤖"},
		{Type: models.StepTypeAction, Title: "Send Email", Description: "Send email notification", Icon: "📧"},
		{Type: models.StepTypeAction, Title: "Google Sheets", Description: "Add to spreadsheet", Icon: "📊"},
		{Type: models.StepTypeAction, Title: "Slack Message", Description: "Send to Slack", Icon: "💬"},
		{Type: models.StepTypeAction, Title: "HTTP Request", Description: "Make API call", Icon: "🌐"},
		{Type: models.StepTypeAction, Title: "Database", Description: "Store in database", Icon: "🗄️"},
		{Type: models.StepTypeCondition, Title: "Filter", Description: "Conditional logic", Icon: "🔍"},
		{Type: models.StepTypeCondition, Title: "Branch", Description: "Split workflow", Icon: "🔀"},
	}
}

func defaultCategories() []models.Category {
	return []models.Category{
		{ID: "all", Name: "All", Count: 60},
		{ID: "productivity", Name: "Productivity", Count: 18},
		{ID: "development", Name: "Development", Count: 12},
		{ID: "sales", Name: "Sales", Count: 8},
		{ID: "marketing", Name: "Marketing", Count: 9},
		{ID: "content", Name: "Content", Count: 5},
		{ID: "finance", Name: "Finance", Count: 3},
		{ID: "analytics", Name: "Analytics", Count: 3},
		{ID: "ai", Name: "AI", Count: 2},
	}
}

func defaultAgentCategories() []models.AgentCategory {
	return []models.AgentCategory{
		{Value: "productivity", Label: "Productivity", Icon: "⚡"},
		{Value: "development", Label: "Development", Icon: "💻"},
		{Value: "sales", Label: "Sales", Icon: "💰"},
		{Value: "marketing", Label: "Marketing", Icon: "📊"},
		{Value: "content", Label: "Content", Icon: "✍️"},
		{Value: "analytics", Label: "Analytics", Icon: "📈"},
		{Value: "ai", Label: "AI", Icon: "🤖"},
	}
}

func defaultPromptPresets() []models.PromptPreset {
	return []models.PromptPreset{
		{
			Name:        "Data Processor",
			Description: "Process and analyze structured data",
			Prompt:      "You are a data processing agent. Extract key information from the provided data and format it in a structured way. Focus on: 1) Data validation, 2) Key metrics extraction, 3) Structured output formatting.",
		},
		{
			Name:        "Content Creator",
			Description: "Generate creative content",
			Prompt:      "You are a content creation agent. Generate engaging, high-quality content based on the input. Consider: 1) Target audience, 2) Content style and tone, 3) SEO optimization, 4) Engagement factors.",
		},
		{
			Name:        "Customer Service",
			Description: "Handle customer inquiries",
			Prompt:      "You are a customer service agent. Respond to customer inquiries professionally and helpfully. Always: 1) Acknowledge the customer's concern, 2) Provide clear solutions, 3) Maintain a friendly tone, 4) Escalate when necessary.",
		},
		{
			Name:        "Code Assistant",
			Description: "Help with programming tasks",
			Prompt:      "You are a programming assistant. Help with code-related tasks including: 1) Code review and optimization, 2) Bug fixing, 3) Feature implementation, 4) Best practices recommendations.",
		},
	}
}

func defaultExecutionLogs() []models.ExecutionLog {
	return []models.ExecutionLog{
		{
			ID:        1,
			AgentID:   1,
			Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Status:    models.RunStatusSuccess,
			Duration:  1200,
			Input:     "New form submission from John Doe",
			Output:    "Successfully added to Google Sheets",
			StepLogs: []models.StepLog{
				{Step: "trigger", Status: models.RunStatusSuccess, Message: "Form submission received"},
				{Step: "ai-processing", Status: models.RunStatusSuccess, Message: "Data processed successfully"},
				{Step: "sheets-add", Status: models.RunStatusSuccess, Message: "Row added to spreadsheet"},
			},
		},
		{
			ID:        2,
			AgentID:   2,
			Timestamp: time.Date(2024, 1, 15, 10, 25, 0, 0, time.UTC),
			Status:    models.RunStatusError,
			Duration:  800,
			Input:     "GitHub issue #123 created",
			Output:    "Failed to create Linear issue",
			StepLogs: []models.StepLog{
				{Step: "trigger", Status: models.RunStatusSuccess, Message: "GitHub issue detected"},
				{Step: "ai-processing", Status: models.RunStatusSuccess, Message: "Issue analyzed"},
				{Step: "linear-create", Status: models.RunStatusError, Message: "Linear API authentication failed"},
			},
		},
	}
}
