package adflow

// User-facing texts of the creation conversation.
const (
	MsgPromptText   = "📝 Введите текст объявления:"
	MsgPromptMedia  = "🖼 Отправьте фото или видео (или пропустите — /skip):"
	MsgPromptButton = "🔗 Добавьте кнопку (например: «Перейти — https://site.ru») или /skip:"

	MsgMediaRetry        = "Отправьте фото или видео, либо пропустите шаг командой /skip."
	MsgButtonFormatError = "❌ Неверный формат. Используйте: Текст — https://..."

	MsgSubmitted    = "✅ Объявление отправлено на модерацию!"
	MsgSubmitFailed = "⚠️ Не удалось сохранить объявление, попробуйте отправить ещё раз. Черновик не потерян."
	MsgSessionLost  = "Сессия создания объявления не найдена. Нажмите «Создать объявление», чтобы начать заново."
)
