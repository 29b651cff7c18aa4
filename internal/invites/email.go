package invites

import (
	"html/template"
	"strings"
)

const invitationSubject = "You're Invited – Your RSVP is Confirmed!"

// Decorative invitation body. The QR image is referenced by its public URL so
// the email stays small; guests who lose the email can still be verified by
// name or email at the desk.
var invitationTmpl = template.Must(template.New("invitation").Parse(`
<div style="max-width:500px;margin:0 auto;padding:32px 24px;background:#fff;border-radius:16px;border:1px solid #eee;font-family:'Georgia',serif;">
  <div style="text-align:center;margin-bottom:24px;">
    <div style="font-size:13px;letter-spacing:2px;color:#888;">TOGETHER WITH THEIR FAMILIES</div>
    <div style="font-size:13px;letter-spacing:1px;color:#888;margin:18px 0;">WE REQUEST THE PLEASURE OF YOUR COMPANY<br/>AT THE CEREMONY OF OUR WEDDING</div>
  </div>
  <div style="text-align:center;">
    <div style="font-size:15px;color:#222;margin-bottom:8px;">Dear {{.Name}}, show this QR code at the entrance:</div>
    <img src="{{.QRCodeURL}}" alt="QR Code" style="width:160px;height:160px;border-radius:12px;border:1px solid #eee;background:#fafafa;" />
    <div style="font-size:12px;color:#888;margin-top:8px;">If you lose this email, you can still be verified with your name or email.</div>
  </div>
</div>
`))

func renderInvitation(name, qrURL string) (string, error) {
	var b strings.Builder
	err := invitationTmpl.Execute(&b, struct {
		Name      string
		QRCodeURL string
	}{Name: name, QRCodeURL: qrURL})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
