package planner

import "triage-backend/internal/models"

// DefaultLanguage is the fallback when a requested language has no
// translations yet.
const DefaultLanguage = models.LanguageEnglish

// Template tables for the supported output languages. Keys of the summary
// table combine the primary-concern domain with the overall triage level;
// checklists are keyed by triage level alone. Placeholders {bp} and
// {glucose} are substituted with measured values.

var summaryTemplates = map[string]map[models.Language]string{
	"maternal_urgent": {
		models.LanguageEnglish: "URGENT: High maternal risk due to elevated blood pressure ({bp}). Immediate referral to PHC required.",
		models.LanguageHindi:   "तत्काल: उच्च रक्तचाप ({bp}) के कारण गर्भवती महिला को तुरंत PHC भेजें।",
		models.LanguageTamil:   "அவசரம்: உயர் இரத்த அழுத்தம் ({bp}) காரணமாக உடனடியாக PHC க்கு அனுப்பவும்.",
	},
	"maternal": {
		models.LanguageEnglish: "Maternal health concern detected. Blood pressure: {bp}. Recommend PHC visit within 24 hours.",
		models.LanguageHindi:   "गर्भवती महिला के स्वास्थ्य में चिंता। रक्तचाप: {bp}। 24 घंटे में PHC जाएं।",
		models.LanguageTamil:   "கர்ப்பிணி பெண்ணின் உடல்நலம் கவனிக்கப்பட வேண்டும். இரத்த அழுத்தம்: {bp}. 24 மணி நேரத்தில் PHC செல்லவும்.",
	},
	"anemia": {
		models.LanguageEnglish: "Anemia risk detected. Symptoms include pallor and fatigue. Iron supplementation and PHC consultation recommended.",
		models.LanguageHindi:   "खून की कमी का खतरा। पीलापन और थकान। आयरन की गोलियां लें और PHC जाएं।",
		models.LanguageTamil:   "இரத்த சோகை அபாயம். வெளிறிய நிறம் மற்றும் சோர்வு. இரும்புச்சத்து மாத்திரைகள் மற்றும் PHC ஆலோசனை.",
	},
	"glycemic": {
		models.LanguageEnglish: "Elevated blood sugar detected ({glucose} mg/dL). Dietary modifications and PHC follow-up needed.",
		models.LanguageHindi:   "रक्त शर्करा बढ़ा हुआ ({glucose} mg/dL)। खान-पान में बदलाव और PHC जाएं।",
		models.LanguageTamil:   "உயர் இரத்த சர்க்கரை ({glucose} mg/dL). உணவு மாற்றங்கள் மற்றும் PHC பரிசோதனை.",
	},
	"infection": {
		models.LanguageEnglish: "Infection risk detected. Fever and symptoms present. Medical evaluation recommended.",
		models.LanguageHindi:   "संक्रमण का खतरा। बुखार और लक्षण। डॉक्टर से मिलें।",
		models.LanguageTamil:   "தொற்று அபாயம். காய்ச்சல் மற்றும் அறிகுறிகள். மருத்துவ பரிசோதனை தேவை.",
	},
	"nutrition": {
		models.LanguageEnglish: "Malnutrition indicators detected. Nutritional supplementation and monitoring required.",
		models.LanguageHindi:   "कुपोषण के संकेत। पोषण पूरक और निगरानी आवश्यक।",
		models.LanguageTamil:   "ஊட்டச்சத்து குறைபாடு அறிகுறிகள். ஊட்டச்சத்து மற்றும் கண்காணிப்பு தேவை.",
	},
	"general_health": {
		models.LanguageEnglish: "General health assessment completed. Continue routine monitoring.",
		models.LanguageHindi:   "सामान्य स्वास्थ्य जांच पूर्ण। नियमित निगरानी जारी रखें।",
		models.LanguageTamil:   "பொது உடல்நல மதிப்பீடு முடிந்தது. வழக்கமான கண்காணிப்பு தொடரவும்.",
	},
}

var actionChecklists = map[models.RiskLevel]map[models.Language][]string{
	models.LevelUrgent: {
		models.LanguageEnglish: {
			"Arrange immediate transport to Primary Health Center (PHC)",
			"Do NOT allow patient to walk or exert",
			"Accompany patient to PHC",
			"Inform PHC medical officer in advance",
			"Monitor vital signs during transport",
		},
		models.LanguageHindi: {
			"तुरंत PHC के लिए वाहन की व्यवस्था करें",
			"मरीज को चलने या मेहनत न करने दें",
			"मरीज के साथ PHC जाएं",
			"PHC के डॉक्टर को पहले से सूचित करें",
			"रास्ते में जीवन संकेतों की निगरानी करें",
		},
		models.LanguageTamil: {
			"உடனடியாக PHC க்கு போக்குவரத்து ஏற்பாடு செய்யவும்",
			"நோயாளி நடக்க அல்லது உழைக்க அனுமதிக்க வேண்டாம்",
			"நோயாளியுடன் PHC செல்லவும்",
			"PHC மருத்துவரை முன்கூட்டியே தெரிவிக்கவும்",
			"பயணத்தின் போது உயிர் அறிகுறிகளை கண்காணிக்கவும்",
		},
	},
	models.LevelHigh: {
		models.LanguageEnglish: {
			"Schedule PHC visit within 24 hours",
			"Advise rest and avoid strenuous activity",
			"Monitor symptoms closely",
			"Provide written referral note",
			"Follow up within 2 days",
		},
		models.LanguageHindi: {
			"24 घंटे में PHC जाने का समय तय करें",
			"आराम करें और भारी काम न करें",
			"लक्षणों पर नजर रखें",
			"लिखित रेफरल नोट दें",
			"2 दिन में फॉलो-अप करें",
		},
		models.LanguageTamil: {
			"24 மணி நேரத்தில் PHC பார்வை திட்டமிடவும்",
			"ஓய்வு மற்றும் கடினமான செயல்பாடுகளை தவிர்க்கவும்",
			"அறிகுறிகளை நெருக்கமாக கண்காணிக்கவும்",
			"எழுத்துப்பூர்வ பரிந்துரை குறிப்பு வழங்கவும்",
			"2 நாட்களில் பின்தொடர்தல்",
		},
	},
	models.LevelModerate: {
		models.LanguageEnglish: {
			"Schedule PHC visit within 3-5 days",
			"Continue monitoring at home",
			"Maintain symptom diary",
			"Follow dietary/medication advice",
			"Return if symptoms worsen",
		},
		models.LanguageHindi: {
			"3-5 दिन में PHC जाएं",
			"घर पर निगरानी जारी रखें",
			"लक्षणों की डायरी रखें",
			"आहार/दवा की सलाह मानें",
			"लक्षण बढ़ने पर वापस आएं",
		},
		models.LanguageTamil: {
			"3-5 நாட்களில் PHC பார்வை",
			"வீட்டில் கண்காணிப்பு தொடரவும்",
			"அறிகுறி நாட்குறிப்பு பராமரிக்கவும்",
			"உணவு/மருந்து ஆலோசனையை பின்பற்றவும்",
			"அறிகுறிகள் மோசமானால் திரும்பவும்",
		},
	},
	models.LevelLow: {
		models.LanguageEnglish: {
			"Continue routine health monitoring",
			"Maintain healthy diet and lifestyle",
			"Schedule next regular checkup",
			"Watch for any new symptoms",
			"Contact health worker if concerns arise",
		},
		models.LanguageHindi: {
			"नियमित स्वास्थ्य निगरानी जारी रखें",
			"स्वस्थ आहार और जीवनशैली बनाए रखें",
			"अगली नियमित जांच का समय तय करें",
			"नए लक्षणों पर ध्यान दें",
			"चिंता होने पर स्वास्थ्य कार्यकर्ता से संपर्क करें",
		},
		models.LanguageTamil: {
			"வழக்கமான உடல்நல கண்காணிப்பு தொடரவும்",
			"ஆரோக்கியமான உணவு மற்றும் வாழ்க்கை முறை பராமரிக்கவும்",
			"அடுத்த வழக்கமான பரிசோதனை திட்டமிடவும்",
			"புதிய அறிகுறிகளை கவனிக்கவும்",
			"கவலைகள் எழுந்தால் சுகாதார பணியாளரை தொடர்பு கொள்ளவும்",
		},
	},
}

var emergencySigns = map[string]map[models.Language][]string{
	"maternal": {
		models.LanguageEnglish: {
			"Severe headache or vision changes",
			"Seizures or convulsions",
			"Severe abdominal pain",
			"Heavy vaginal bleeding",
			"Reduced or no fetal movement",
		},
		models.LanguageHindi: {
			"गंभीर सिरदर्द या दृष्टि में बदलाव",
			"दौरे या ऐंठन",
			"गंभीर पेट दर्द",
			"भारी योनि से रक्तस्राव",
			"भ्रूण की गति कम या नहीं",
		},
		models.LanguageTamil: {
			"கடுமையான தலைவலி அல்லது பார்வை மாற்றங்கள்",
			"வலிப்புத்தாக்கங்கள்",
			"கடுமையான வயிற்று வலி",
			"அதிக யோனி இரத்தப்போக்கு",
			"குறைந்த அல்லது கருவின் இயக்கம் இல்லை",
		},
	},
	"anemia": {
		models.LanguageEnglish: {
			"Extreme weakness or fainting",
			"Rapid heartbeat at rest",
			"Severe breathlessness",
			"Chest pain",
		},
		models.LanguageHindi: {
			"अत्यधिक कमजोरी या बेहोशी",
			"आराम के समय तेज़ दिल की धड़कन",
			"गंभीर सांस फूलना",
			"सीने में दर्द",
		},
		models.LanguageTamil: {
			"தீவிர பலவீனம் அல்லது மயக்கம்",
			"ஓய்வில் விரைவான இதயத் துடிப்பு",
			"கடுமையான மூச்சுத் திணறல்",
			"மார்பு வலி",
		},
	},
	"general": {
		models.LanguageEnglish: {
			"Difficulty breathing",
			"Persistent high fever",
			"Severe pain",
			"Confusion or altered consciousness",
		},
		models.LanguageHindi: {
			"सांस लेने में कठिनाई",
			"लगातार तेज बुखार",
			"गंभीर दर्द",
			"भ्रम या बेहोशी",
		},
		models.LanguageTamil: {
			"சுவாசிப்பதில் சிரமம்",
			"தொடர்ச்சியான அதிக காய்ச்சல்",
			"கடுமையான வலி",
			"குழப்பம் அல்லது மயக்க நிலை",
		},
	},
}

var voiceTemplates = map[models.RiskLevel]map[models.Language]string{
	models.LevelUrgent: {
		models.LanguageEnglish: "This is urgent. Please go to the primary health center immediately.",
		models.LanguageHindi:   "यह तत्काल है। कृपया तुरंत प्राथमिक स्वास्थ्य केंद्र जाएं।",
		models.LanguageTamil:   "இது அவசரம். உடனடியாக ஆரம்ப சுகாதார நிலையத்திற்கு செல்லவும்.",
	},
	models.LevelHigh: {
		models.LanguageEnglish: "High risk found. Please visit the primary health center within one day.",
		models.LanguageHindi:   "उच्च जोखिम पाया गया। कृपया एक दिन के भीतर स्वास्थ्य केंद्र जाएं।",
		models.LanguageTamil:   "அதிக அபாயம் கண்டறியப்பட்டது. ஒரு நாளுக்குள் சுகாதார நிலையத்திற்கு செல்லவும்.",
	},
	models.LevelModerate: {
		models.LanguageEnglish: "Some risk found. Please visit the health center within a few days.",
		models.LanguageHindi:   "कुछ जोखिम पाया गया। कृपया कुछ दिनों में स्वास्थ्य केंद्र जाएं।",
		models.LanguageTamil:   "சில அபாயம் கண்டறியப்பட்டது. சில நாட்களில் சுகாதார நிலையத்திற்கு செல்லவும்.",
	},
	models.LevelLow: {
		models.LanguageEnglish: "No urgent risk found. Continue routine care and monitoring.",
		models.LanguageHindi:   "कोई तत्काल जोखिम नहीं। नियमित देखभाल जारी रखें।",
		models.LanguageTamil:   "அவசர அபாயம் இல்லை. வழக்கமான பராமரிப்பைத் தொடரவும்.",
	},
}
