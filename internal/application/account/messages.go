package account

import (
	"fmt"

	"github.com/nakliye-kontrol-api/internal/domain"
)

// Message templates for the notification gateway. Codes are valid for ten
// minutes; the wording reminds recipients not to share them.

func emailMessage(fullName, code, purpose string) (subject, body string) {
	if purpose == domain.PurposePasswordReset {
		subject = "Arkas Lojistik - Şifre Sıfırlama Kodu"
		body = fmt.Sprintf(
			"Merhaba %s!\n\nŞifrenizi sıfırlamak için aşağıdaki kodu kullanın:\n\n%s\n\n"+
				"Bu kod 10 dakika süreyle geçerlidir. Eğer şifre sıfırlama talebinde bulunmadıysanız, bu emaili görmezden gelin.",
			fullName, code)
		return
	}
	subject = "Arkas Lojistik - Email Doğrulama Kodu"
	body = fmt.Sprintf(
		"Merhaba %s!\n\nArkas Lojistik hesabınızı doğrulamak için aşağıdaki kodu kullanın:\n\n%s\n\n"+
			"Bu kod 10 dakika süreyle geçerlidir. Güvenliğiniz için kodu kimseyle paylaşmayın.",
		fullName, code)
	return
}

func smsMessage(code, purpose string) string {
	if purpose == domain.PurposePasswordReset {
		return fmt.Sprintf("Arkas Lojistik şifre sıfırlama kodunuz: %s\n\n10 dakika geçerlidir.", code)
	}
	return fmt.Sprintf("Arkas Lojistik doğrulama kodunuz: %s\n\nGüvenliğiniz için kimseyle paylaşmayın.\n10 dakika geçerlidir.", code)
}
