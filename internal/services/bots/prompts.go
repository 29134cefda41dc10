package bots

import "github.com/wedevbytes/nyaya/internal/models"

// Prompt templates for the four legal-domain bots. Each template has a
// {context} slot for the retrieved chunks and a {question} slot for the
// user's question.

const ipcPromptTemplate = `You are an Indian criminal law expert specializing in the Indian Penal Code (IPC).
You provide accurate, concise information about criminal laws, offenses, and punishments in India.
Always cite the specific IPC sections when providing information.

Use the following context to answer the question:

{context}

Question: {question}

Answer:`

const rtiPromptTemplate = `You are an RTI (Right to Information) assistant specializing in the Indian RTI Act.
You provide guidance on filing RTI applications, timelines, procedures, and information about
the rights of Indian citizens regarding government information access.

Use the following context to answer the question:

{context}

Question: {question}

Answer:`

const laborLawPromptTemplate = `You are a labor law expert specializing in Indian labor regulations.
You provide information on worker's rights, labor codes, employment laws, workplace safety,
and related regulations in India.

Use the following context to answer the question:

{context}

Question: {question}

Answer:`

const constitutionPromptTemplate = `You are a constitutional law advisor specializing in the Indian Constitution.
You provide insights on fundamental rights, directive principles, constitutional articles,
amendments, and the structure of Indian governance.

Use the following context to answer the question:

{context}

Question: {question}

Answer:`

// Bots is the fixed registry of legal-domain assistants, in menu order.
var Bots = []models.Bot{
	{
		Name:           "IPC Bot",
		Domain:         models.DomainIPC,
		Description:    "Specialized in Indian Penal Code (IPC) sections, criminal offenses, and punishments.",
		PromptTemplate: ipcPromptTemplate,
	},
	{
		Name:           "RTI Bot",
		Domain:         models.DomainRTI,
		Description:    "Expert on Right to Information (RTI) Act, filing procedures, and information access rights.",
		PromptTemplate: rtiPromptTemplate,
	},
	{
		Name:           "Labor Law Bot",
		Domain:         models.DomainLaborLaw,
		Description:    "Focused on Indian labor regulations, worker's rights, and workplace laws.",
		PromptTemplate: laborLawPromptTemplate,
	},
	{
		Name:           "Constitution Bot",
		Domain:         models.DomainConstitution,
		Description:    "Knowledgeable about Indian Constitution, fundamental rights, and governance structure.",
		PromptTemplate: constitutionPromptTemplate,
	},
}

// BotByName returns the bot with the given display name.
func BotByName(name string) (models.Bot, bool) {
	for _, bot := range Bots {
		if bot.Name == name {
			return bot, true
		}
	}
	return models.Bot{}, false
}

// BotByDomain returns the bot owning the given domain key.
func BotByDomain(domain string) (models.Bot, bool) {
	for _, bot := range Bots {
		if bot.Domain == domain {
			return bot, true
		}
	}
	return models.Bot{}, false
}
