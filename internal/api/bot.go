package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "bloodgroup-bot/internal/application"
	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я бот для определения группы крови по фото тест-карты.

📋 Команды:
/new — начать новую проверку
/help — справка
/cancel — отменить текущую проверку`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /new
2️⃣ Отправьте данные пациента одной строкой: Имя, возраст, пол
   Например: John Doe, 34, Male
3️⃣ Отправьте фото образца крови
4️⃣ Вы получите группу крови, фото с подсветкой маркеров и PDF-отчёт

💡 Пол: Male, Female или Other`

	msgAwaitingPatient = "👤 Отправьте данные пациента одной строкой: Имя, возраст, пол (Male/Female/Other)."
	msgAwaitingSample  = "✅ Данные пациента сохранены. 📂 Теперь отправьте фото образца крови."
	msgCancelled       = "❌ Проверка отменена. Отправьте /new для новой проверки."
	msgUseNew          = "📋 Отчёт уже готов. Отправьте /new для новой проверки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Анализирую образец..."
	msgBadPatient      = "⚠️ Не удалось разобрать данные пациента. Формат: Имя, возраст, пол (Male/Female/Other)."
	msgSendSample      = "📸 Пожалуйста, отправьте фото образца крови."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте отправить другое фото."
	msgNoMarkers       = "⚠️ Маркеры группы крови не обнаружены."
	msgUnknownGroup    = "⚠️ Маркеры не соответствуют ни одной группе крови. Это не диагноз."
	msgUnsupportedText = "⚠️ Имя пациента нельзя вывести в PDF-отчёт. Отправьте /cancel и введите имя латиницей."
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *app.SessionService
}

// NewBot создаёт нового бота
func NewBot(token string, sessions *app.SessionService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		sessions: sessions,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	session, err := b.sessions.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото или изображения, отправленного файлом
	if fileID, ok := sampleFileID(msg); ok {
		b.handleSample(ctx, msg, session, fileID)
		return
	}

	b.handleText(ctx, msg, session)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		if _, err := b.sessions.Begin(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error starting session: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "new":
		if _, err := b.sessions.Begin(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error starting session: %v", err)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingPatient)

	case "cancel":
		if _, err := b.sessions.Cancel(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error cancelling session: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleText принимает данные пациента
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, session *entity.Session) {
	switch session.State {
	case entity.StateAwaitingPatientInfo:
		patient, err := parsePatient(msg.Text)
		if err != nil {
			b.sendMessage(msg.Chat.ID, msgBadPatient)
			return
		}
		if _, err := b.sessions.SubmitPatient(ctx, msg.From.ID, msg.Chat.ID, patient); err != nil {
			log.Printf("Error saving patient: %v", err)
			b.sendMessage(msg.Chat.ID, msgBadPatient)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingSample)

	case entity.StateAwaitingSample:
		b.sendMessage(msg.Chat.ID, msgSendSample)

	default:
		b.sendMessage(msg.Chat.ID, msgUseNew)
	}
}

// handleSample обрабатывает фото образца
func (b *Bot) handleSample(ctx context.Context, msg *tgbotapi.Message, session *entity.Session, fileID string) {
	switch session.State {
	case entity.StateAwaitingPatientInfo:
		b.sendMessage(msg.Chat.ID, msgAwaitingPatient)
		return
	case entity.StateAwaitingSample:
	default:
		b.sendMessage(msg.Chat.ID, msgUseNew)
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.sessions.SubmitSample(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		log.Printf("Error processing sample: %v", err)
		b.sendMessage(msg.Chat.ID, sampleErrorMessage(err))
		return
	}

	b.sendMessage(msg.Chat.ID, formatResult(out.Report))

	if len(out.Highlighted) > 0 {
		photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "detected.jpg", Bytes: out.Highlighted})
		photo.Caption = "🔬 Результат детекции"
		if _, err := b.api.Send(photo); err != nil {
			log.Printf("Error sending photo: %v", err)
		}
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{Name: reportFileName(out.Report), Bytes: out.Document})
	doc.Caption = "📥 PDF-отчёт"
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending report: %v", err)
	}
}

// sampleFileID возвращает файл с максимальным разрешением
func sampleFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// parsePatient разбирает строку "Имя, возраст, пол"
func parsePatient(text string) (entity.Patient, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return entity.Patient{}, fmt.Errorf("%w: expected 3 fields, got %d", entity.ErrInvalidPatient, len(parts))
	}

	age, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Patient{}, fmt.Errorf("%w: age: %v", entity.ErrInvalidPatient, err)
	}
	gender, err := entity.ParseGender(parts[2])
	if err != nil {
		return entity.Patient{}, err
	}

	p := entity.Patient{
		Name:   strings.TrimSpace(parts[0]),
		Age:    age,
		Gender: gender,
	}
	return p, p.Validate()
}

// formatResult готовит текстовую сводку отчёта
func formatResult(r *entity.Report) string {
	c := r.Classification
	var sb strings.Builder
	fmt.Fprintf(&sb, "🩸 Группа крови: %s\n", c.Group)
	if markers := c.Markers.String(); markers != "" {
		fmt.Fprintf(&sb, "🔬 Обнаруженные компоненты: %s\n", markers)
	}
	switch {
	case c.NoMarkers:
		sb.WriteString(msgNoMarkers + "\n")
	case !c.Group.IsKnown():
		sb.WriteString(msgUnknownGroup + "\n")
	}
	fmt.Fprintf(&sb, "\n👤 %s, %d, %s", r.Patient.Name, r.Patient.Age, r.Patient.Gender)
	return sb.String()
}

func reportFileName(r *entity.Report) string {
	return fmt.Sprintf("blood_group_report_%s.pdf", r.GeneratedAt.Format("20060102_150405"))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sampleErrorMessage подбирает ответ пользователю на ошибку обработки образца.
func sampleErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidTransition):
		return msgUseNew
	case errors.Is(err, port.ErrUnsupportedText):
		return msgUnsupportedText
	default:
		return msgProcessingError
	}
}
