package content

var CompanyNames = []string{
	"Acme Corporation",
	"TechVision Inc",
	"DataFlow Systems",
	"CloudScale Solutions",
	"InnovateLabs",
}

var CompanyDomains = []string{
	"acmecorp.com",
	"techvision.io",
	"dataflow.com",
	"cloudscale.net",
	"innovatelabs.io",
}

// TeamNames and TeamTypes are parallel.
var TeamNames = []string{
	"Engineering", "Product", "Marketing", "Sales", "Customer Success",
	"Design", "Operations", "Finance", "HR", "Legal",
}

var TeamTypes = []string{
	"engineering", "product", "marketing", "sales", "support",
	"design", "operations", "finance", "hr", "legal",
}

var FirstNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Ethan", "Fiona", "George", "Hannah",
	"Ian", "Julia", "Kevin", "Laura", "Michael", "Nina", "Oliver", "Patricia",
	"Quinn", "Rachel", "Steve", "Tara", "Uma", "Victor", "Wendy", "Xavier",
	"Yara", "Zachary", "Amy", "Ben", "Claire", "David", "Emma", "Frank",
	"Grace", "Henry", "Iris", "Jack", "Kate", "Liam", "Mia", "Nathan",
	"Olivia", "Paul", "Rosa", "Sam", "Tina", "Ursula", "Vera", "Will", "Zoe",
}

var LastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Walker", "Hall",
	"Allen", "Young", "King", "Wright", "Scott", "Green", "Baker", "Adams",
	"Nelson", "Carter", "Mitchell", "Roberts", "Turner", "Phillips", "Campbell",
	"Parker", "Evans", "Edwards", "Collins", "Stewart", "Morris", "Rogers", "Reed",
}

var Roles = []string{
	"Engineer", "Manager", "Designer", "Analyst", "Coordinator", "Specialist", "Lead", "Director",
}

var ProjectTemplates = []string{
	"{filler} Planning",
	"{filler} Product Launch",
	"{filler} Marketing Campaign",
	"Website Redesign {filler}",
	"{filler} Integration Project",
	"Customer Onboarding {filler}",
	"{filler} Feature Development",
	"Bug Fixes - {filler}",
	"Infrastructure Upgrade {filler}",
	"Sales Enablement {filler}",
	"{filler} Documentation",
	"Mobile App - {filler}",
	"API Development {filler}",
	"Security Audit {filler}",
	"Performance Optimization {filler}",
}

var ProjectFillers = []string{
	"Q1", "Q2", "Q3", "Q4",
	"2024", "2025", "2026",
	"Sprint", "Phase 1", "Phase 2", "v1.0", "v2.0", "Alpha", "Beta", "Pilot",
}

var ProjectTypes = []string{
	"product", "marketing", "operations", "initiative", "campaign", "infrastructure",
}

var SectionNames = []string{
	"To Do", "In Progress", "In Review", "Done", "Backlog", "Blocked",
	"Ready for Testing", "Planning", "Research", "Design", "Development",
	"Testing", "Deployment",
}

var TaskTemplates = []string{
	"Implement {component} feature",
	"Fix bug in {component}",
	"Review {component} documentation",
	"Test {component} functionality",
	"Design {component} interface",
	"Refactor {component} module",
	"Update {component} configuration",
	"Deploy {component} to production",
	"Optimize {component} performance",
	"Research {component} solution",
	"Write tests for {component}",
	"Create {component} mockups",
	"Analyze {component} metrics",
	"Set up {component} integration",
	"Document {component} API",
	"Migrate {component} database",
	"Improve {component} UX",
	"Add {component} validation",
	"Configure {component} monitoring",
	"Prepare {component} presentation",
}

var Components = []string{
	"authentication", "dashboard", "API", "database", "frontend", "backend",
	"payment system", "user profile", "search", "notifications", "reports",
	"admin panel", "mobile app", "analytics", "settings", "workflow",
	"integration", "permissions", "logging", "caching", "email system",
}

var DescriptionTemplates = []string{
	"Details for {title}",
	"Scope and acceptance criteria for {title}",
	"Context: {title}. Coordinate with the {component} owners before starting.",
}

var SubtaskTitles = []string{
	"Research approach",
	"Create design mockup",
	"Write unit tests",
	"Update documentation",
	"Code review",
	"QA testing",
	"Deploy to staging",
	"Get stakeholder approval",
	"Update dependencies",
	"Refactor code",
	"Add error handling",
	"Performance testing",
	"Security review",
	"Write changelog",
	"Update API docs",
}

var CommentTemplates = []string{
	"This looks good to me, approved!",
	"Can we discuss this in tomorrow's standup?",
	"I've made some changes, please review.",
	"Blocked on the API integration.",
	"Need clarification on requirements.",
	"Great work! Shipped to production.",
	"Found an edge case we need to handle.",
	"Testing completed successfully.",
	"Added to sprint backlog.",
	"Reassigning to {name} for review.",
	"Updated based on feedback.",
	"This is urgent, prioritizing now.",
	"Waiting on design mockups.",
	"Dependencies have been updated.",
	"Documentation is complete.",
	"Let's break this into smaller tasks.",
	"Related to ticket #{number}.",
	"Performance looks good after optimization.",
	"Security review passed.",
	"Merged PR, closing task.",
}

var TagNames = []string{
	"bug", "feature", "enhancement", "urgent", "high-priority", "low-priority",
	"documentation", "design", "backend", "frontend", "mobile", "api",
	"security", "performance", "tech-debt", "refactoring", "testing", "blocked",
	"needs-review", "customer-request", "internal", "ui/ux", "accessibility",
	"infrastructure", "deployment",
}
