package mail

type LeadAlertData struct {
	Name      string
	Email     string
	Objective string
	Score     int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
