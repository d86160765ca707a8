// Package i18n resolves the request language and translates server messages.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Language is one entry of the language switcher.
type Language struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultLanguage is used when nothing in the request matches.
const DefaultLanguage = "en"

// Languages lists the supported languages; the first one is the fallback.
var Languages = []Language{
	{Value: "en", Label: "English"},
	{Value: "ko", Label: "한국어"},
}

// Message keys.
const (
	KeyChangedSuccessfully      = "FormMessage.changed_successfully"
	KeyOldPasswordRequired      = "FormMessage.old_password_required"
	KeyOldPasswordDoesNotMatch  = "FormMessage.old_password_does_not_match"
	KeyNewPasswordMustDiffer    = "FormMessage.new_password_should_be_different_from_the_old_password"
	KeyInvalidConfirmPassword   = "FormMessage.invalid_confirm_password"
	KeyInvalidLanguage          = "FormMessage.invalid_language"
	KeySomethingWentWrong       = "FormMessage.something_went_wrong"
	KeyUnauthorized             = "FormMessage.unauthorized"
	KeyPasswordChangedEmailSubj = "Email.password_changed_subject"
	KeyPasswordChangedEmailBody = "Email.password_changed_body"
)

var messages = map[string]map[string]string{
	"en": {
		KeyChangedSuccessfully:      "Your password has been changed.",
		KeyOldPasswordRequired:      "Please enter your current password.",
		KeyOldPasswordDoesNotMatch:  "Old password does not match.",
		KeyNewPasswordMustDiffer:    "New password should be different from the old password.",
		KeyInvalidConfirmPassword:   "Passwords do not match.",
		KeyInvalidLanguage:          "Unsupported language.",
		KeySomethingWentWrong:       "Something went wrong. Please try again.",
		KeyUnauthorized:             "Unauthorized",
		KeyPasswordChangedEmailSubj: "Your password was changed",
		KeyPasswordChangedEmailBody: "Hello %s,\n\nThe password of your account was changed at %s from %s.\nIf this wasn't you, contact support immediately.\n",
	},
	"ko": {
		KeyChangedSuccessfully:      "비밀번호가 변경되었습니다.",
		KeyOldPasswordRequired:      "현재 비밀번호를 입력해 주세요.",
		KeyOldPasswordDoesNotMatch:  "이전 비밀번호가 일치하지 않습니다.",
		KeyNewPasswordMustDiffer:    "새 비밀번호는 이전 비밀번호와 달라야 합니다.",
		KeyInvalidConfirmPassword:   "비밀번호가 일치하지 않습니다.",
		KeyInvalidLanguage:          "지원하지 않는 언어입니다.",
		KeySomethingWentWrong:       "문제가 발생했습니다. 다시 시도해 주세요.",
		KeyUnauthorized:             "권한이 없습니다",
		KeyPasswordChangedEmailSubj: "비밀번호가 변경되었습니다",
		KeyPasswordChangedEmailBody: "%s님, 안녕하세요.\n\n계정 비밀번호가 %s에 %s에서 변경되었습니다.\n본인이 아니라면 즉시 문의해 주세요.\n",
	},
}

var (
	tags    []language.Tag
	matcher language.Matcher
	cat     *catalog.Builder
)

func init() {
	cat = catalog.NewBuilder(catalog.Fallback(language.English))
	for _, l := range Languages {
		tag := language.MustParse(l.Value)
		tags = append(tags, tag)
		for key, msg := range messages[l.Value] {
			if err := cat.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	matcher = language.NewMatcher(tags)
}

// IsSupported reports whether value is one of Languages.
func IsSupported(value string) bool {
	for _, l := range Languages {
		if l.Value == value {
			return true
		}
	}
	return false
}

// Resolve picks a supported language from the given preferences, in order.
// Each preference may be a bare tag ("ko") or an Accept-Language header.
func Resolve(preferences ...string) string {
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		if IsSupported(pref) {
			return pref
		}
		desired, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(desired) == 0 {
			continue
		}
		_, index, confidence := matcher.Match(desired...)
		if confidence != language.No {
			return Languages[index].Value
		}
	}
	return DefaultLanguage
}

// T translates key into lang, formatting args printf-style.
// Unknown keys are returned as-is.
func T(lang, key string, args ...interface{}) string {
	if !IsSupported(lang) {
		lang = DefaultLanguage
	}
	p := message.NewPrinter(language.MustParse(lang), message.Catalog(cat))
	return p.Sprintf(key, args...)
}
