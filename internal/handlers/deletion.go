package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
	"github.com/eystudio/caloriediet-backend/pkg/clientip"
)

const deletionNoteMax = 500

var deletionPageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Hesap Silme - CalorieDiet</title>
<style>
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; background: #f5f7fa; min-height: 100vh; padding: 20px; }
.container { max-width: 700px; margin: 0 auto; background: #fff; border-radius: 16px; box-shadow: 0 4px 20px rgba(0,0,0,0.1); overflow: hidden; }
.header { background: #4CAF50; color: #fff; padding: 30px; text-align: center; }
.content { padding: 30px; }
.section { margin-bottom: 25px; }
.section h2 { color: #4CAF50; font-size: 18px; margin-bottom: 12px; }
label { display: block; margin-bottom: 6px; font-weight: 600; }
input[type=email], textarea { width: 100%; padding: 10px; border: 1px solid #ccc; border-radius: 8px; margin-bottom: 16px; }
button { background: #4CAF50; color: #fff; border: none; border-radius: 8px; padding: 12px 24px; font-size: 16px; cursor: pointer; }
.honeypot { position: absolute; left: -9999px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Hesap Silme Talebi</h1>
    <p>CalorieDiet hesabınızı ve verilerinizi silmek için bu formu kullanın.</p>
  </div>
  <div class="content">
    <div class="section">
      <h2>Silinecek Veriler</h2>
      <p>Hesabınız, oturumlarınız, öğün kayıtlarınız, su ve adım takipleriniz, vitamin hatırlatıcılarınız, kilo geçmişiniz ve diyet planlarınız kalıcı olarak silinir.</p>
    </div>
    <div class="section">
      <h2>Talep Gönder</h2>
      <form action="/api/account-deletion-request" method="POST">
        <label for="email">E-posta adresiniz</label>
        <input type="email" id="email" name="email" required>
        <label for="note">Not (isteğe bağlı)</label>
        <textarea id="note" name="note" rows="3" maxlength="500"></textarea>
        <div class="honeypot">
          <input type="text" name="website" tabindex="-1" autocomplete="off">
        </div>
        <button type="submit">Silme Talebi Gönder</button>
      </form>
    </div>
  </div>
</div>
</body>
</html>`))

var deletionResultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Hesap Silme - CalorieDiet</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #333; background: #f5f7fa; padding: 40px 20px; text-align: center; }
.card { max-width: 500px; margin: 0 auto; background: #fff; border-radius: 16px; box-shadow: 0 4px 20px rgba(0,0,0,0.1); padding: 40px 30px; }
h1 { color: {{if .OK}}#4CAF50{{else}}#e53935{{end}}; font-size: 22px; margin-bottom: 16px; }
.request-id { font-family: monospace; font-size: 18px; background: #f0f0f0; border-radius: 8px; padding: 8px 16px; display: inline-block; margin: 12px 0; }
a { color: #4CAF50; }
</style>
</head>
<body>
<div class="card">
{{if .OK}}
  <h1>Talebiniz Alındı</h1>
  <p>Hesap silme talebiniz kaydedildi. Talep numaranız:</p>
  <div class="request-id">{{.RequestID}}</div>
  <p>Talebiniz en geç 30 gün içinde işleme alınacaktır.</p>
{{else}}
  <h1>Hata</h1>
  <p>{{.Message}}</p>
  <p><a href="/account-deletion">← Tekrar Dene</a></p>
{{end}}
</div>
</body>
</html>`))

type deletionResult struct {
	OK        bool
	RequestID string
	Message   string
}

// AccountDeletionPage serves the public compliance form required by the app
// stores. No authentication.
func (a *API) AccountDeletionPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	deletionPageTmpl.Execute(w, nil)
}

func writeDeletionResult(w http.ResponseWriter, status int, res deletionResult) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	deletionResultTmpl.Execute(w, res)
}

// SubmitDeletionRequest handles the form POST. A filled honeypot field or a
// tripped rate limit gets an opaque error page.
func (a *API) SubmitDeletionRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDeletionResult(w, http.StatusBadRequest, deletionResult{Message: "İstek işlenemedi. Lütfen daha sonra tekrar deneyin."})
		return
	}
	ip := clientip.RealClientIP(r)

	if r.PostFormValue("website") != "" {
		a.Log.Warn("deletion form honeypot triggered", zap.String("ip", ip))
		writeDeletionResult(w, http.StatusBadRequest, deletionResult{Message: "İstek işlenemedi. Lütfen daha sonra tekrar deneyin."})
		return
	}
	if !a.FormLimit.Allow(ip) {
		a.Log.Warn("deletion form rate limit exceeded", zap.String("ip", ip))
		writeDeletionResult(w, http.StatusTooManyRequests, deletionResult{Message: "Çok fazla istek gönderildi. Lütfen 1 saat sonra tekrar deneyin."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))
	if !emailPattern.MatchString(email) {
		writeDeletionResult(w, http.StatusBadRequest, deletionResult{Message: "Geçerli bir e-posta adresi giriniz."})
		return
	}
	note := strings.TrimSpace(r.PostFormValue("note"))
	if len(note) > deletionNoteMax {
		note = note[:deletionNoteMax]
	}

	req := &models.DeletionRequest{
		RequestID: services.NewDeletionRequestID(),
		Email:     email,
		Reason:    note,
		ClientIP:  ip,
		Status:    "pending",
		CreatedAt: models.NowUTC(),
	}
	if err := a.Store.Deletions.Insert(r.Context(), req); err != nil {
		a.Log.Error("deletion request store failed", zap.Error(err))
		writeDeletionResult(w, http.StatusInternalServerError, deletionResult{Message: "Talep kaydedilemedi. Lütfen daha sonra tekrar deneyin."})
		return
	}
	a.Log.Info("account deletion request stored",
		zap.String("request_id", req.RequestID),
		zap.String("email", email),
	)
	writeDeletionResult(w, http.StatusOK, deletionResult{OK: true, RequestID: req.RequestID})
}
