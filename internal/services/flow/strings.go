package flow

// Localized conversation strings. Keyed by language code ("en", "hi");
// unknown languages fall back to English.

const (
	msgWelcome      = "welcome"
	msgDomainMenu   = "domain_menu"
	msgAskQuestion  = "ask_question"
	msgPostAnswer   = "post_answer"
	msgGoodbye      = "goodbye"
	msgInvalidInput = "invalid_input"
	msgUnavailable  = "unavailable"
	msgError        = "error"
	msgHelp         = "help"
)

var messages = map[string]map[string]string{
	"en": {
		msgWelcome:      "Welcome to the Nyaya legal assistant. Press 1 for English. Press 2 for Hindi.",
		msgDomainMenu:   "Please select a legal topic. Press 1 for the Indian Penal Code. Press 2 for Right to Information. Press 3 for labor laws. Press 4 for constitutional rights.",
		msgAskQuestion:  "Please ask your legal question after the beep.",
		msgPostAnswer:   "Press 1 to ask another question. Press 2 to change the legal topic. Press 9 to end the call.",
		msgGoodbye:      "Thank you for using the Nyaya legal assistant. Goodbye.",
		msgInvalidInput: "Sorry, that choice was not recognized.",
		msgUnavailable:  "Sorry, this legal topic is not available right now. Please choose a different topic.",
		msgError:        "Sorry, something went wrong while answering your question. Please try again.",
		msgHelp:         "I answer questions on Indian law across four topics. Reply with the number of a menu option, or ask your question as text or a voice note. Type \"menu\" to change the legal topic and \"exit\" to end the conversation.",
	},
	"hi": {
		msgWelcome:      "न्याय कानूनी सहायक में आपका स्वागत है। अंग्रेजी के लिए 1 दबाएं। हिंदी के लिए 2 दबाएं।",
		msgDomainMenu:   "कृपया एक कानूनी विषय चुनें। भारतीय दंड संहिता के लिए 1 दबाएं। सूचना का अधिकार के लिए 2 दबाएं। श्रम कानून के लिए 3 दबाएं। संवैधानिक अधिकारों के लिए 4 दबाएं।",
		msgAskQuestion:  "कृपया बीप के बाद अपना कानूनी प्रश्न पूछें।",
		msgPostAnswer:   "एक और प्रश्न पूछने के लिए 1 दबाएं। कानूनी विषय बदलने के लिए 2 दबाएं। कॉल समाप्त करने के लिए 9 दबाएं।",
		msgGoodbye:      "न्याय कानूनी सहायक का उपयोग करने के लिए धन्यवाद। नमस्ते।",
		msgInvalidInput: "क्षमा करें, वह विकल्प पहचाना नहीं गया।",
		msgUnavailable:  "क्षमा करें, यह कानूनी विषय अभी उपलब्ध नहीं है। कृपया कोई दूसरा विषय चुनें।",
		msgError:        "क्षमा करें, आपके प्रश्न का उत्तर देते समय कुछ गलत हो गया। कृपया पुनः प्रयास करें।",
		msgHelp:         "मैं चार विषयों में भारतीय कानून पर प्रश्नों का उत्तर देता हूं। मेनू विकल्प की संख्या से उत्तर दें, या अपना प्रश्न टेक्स्ट या वॉइस नोट के रूप में पूछें। कानूनी विषय बदलने के लिए \"menu\" और बातचीत समाप्त करने के लिए \"exit\" लिखें।",
	},
}

// message returns the localized string for key, falling back to English.
func message(language, key string) string {
	if langMessages, ok := messages[language]; ok {
		if text, ok := langMessages[key]; ok {
			return text
		}
	}
	return messages["en"][key]
}
