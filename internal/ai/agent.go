package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
)

const modelName = "gemini-2.5-flash"

// GenerateChatReply drafts a customer-service reply in Indonesian from the
// conversation history plus the newest customer message. The draft goes
// into an editable field, so the text is returned verbatim.
func GenerateChatReply(ctx context.Context, apiKey, companyName string, history []models.Message, customerMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	var chatHistory strings.Builder
	for _, msg := range history {
		who := "Anda"
		if msg.Sender == "customer" {
			who = "Pelanggan"
		}
		fmt.Fprintf(&chatHistory, "%s: %s\n", who, msg.Text)
	}
	historyText := strings.TrimSpace(chatHistory.String())
	if historyText == "" {
		historyText = "(Tidak ada riwayat chat sebelumnya)"
	}

	prompt := fmt.Sprintf(`Anda adalah asisten layanan pelanggan yang ramah dan sangat membantu untuk sebuah perusahaan penyedia internet bernama "%s".
Tugas Anda adalah membalas pesan pelanggan dengan sopan, jelas, dan singkat dalam Bahasa Indonesia.

Berikut adalah riwayat percakapan sebelumnya:
%s

Pelanggan baru saja mengirim pesan: "%s"

Buatkan draf balasan yang sesuai untuk pesan pelanggan tersebut.`, companyName, historyText, customerMessage)

	model := client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

// GenerateProfitSuggestion asks for 2-3 practical allocation ideas for a
// positive monthly balance.
func GenerateProfitSuggestion(ctx context.Context, apiKey string, balance float64) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	prompt := fmt.Sprintf(`Berdasarkan laba sebesar %s, berikan saran singkat dan praktis dalam bahasa Indonesia tentang cara terbaik untuk mengalokasikan atau menginvestasikan dana ini untuk pertumbuhan bisnis. Fokus pada 2-3 poin utama dalam format bullet point.`, format.IDR(balance))

	model := client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("model returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt), nil
		}
	}
	return "", errors.New("model returned no text")
}
