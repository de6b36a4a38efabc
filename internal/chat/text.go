package chat

const (
	PromptSymbol = "🔍 "

	welcomeText = "👋 Welcome to the Knowledge Graph Query Interface!\nType 'help' for example questions or 'quit' to exit."
	goodbyeText = "👋 Goodbye!"
	noMatchText = "😕 No matches found."
)

var (
	exitCommands = []string{"quit", "exit", "bye", "q"}
	helpCommands = []string{"help", "?", "h"}
)

const helpText = `Available Commands:
  help, ?, h     - Show this help message
  quit, exit, q  - Exit the application

Query Examples:
  - Find developers who speak English
  - Find people who work at Microsoft
  - Show me software developers in Canada
  - Find people who speak English and Japanese
  - Find developers at Amazon who speak multiple languages

Tips:
  - Queries are case-insensitive
  - You can search by language, company, location, industry or university
  - Use natural language to describe who you are looking for`
