package bot

// Menu and reply texts outside the creation conversation.
const (
	btnRoleAdvertiser = "Я — рекламодатель"
	btnRolePublisher  = "Я — владелец канала"

	btnCreateAd    = "Создать объявление"
	btnMyCampaigns = "Мои кампании"
	btnBalance     = "Баланс"

	msgWelcome = "🚀 Добро пожаловать в AdBot TG!\nВыберите свою роль:"

	msgGreetAdvertiser = "Добро пожаловать, рекламодатель!"
	msgGreetPublisher  = "Добро пожаловать, владелец канала!"

	msgRoleAdvertiserSet = "✅ Вы зарегистрированы как рекламодатель!"
	msgRolePublisherSet  = "✅ Вы зарегистрированы как владелец канала!"

	msgNoCampaigns = "У вас пока нет объявлений."
	msgBalanceFmt  = "💰 Ваш баланс: %.2f ₽"

	msgUnknownText = "Не понимаю. Выберите действие на клавиатуре или отправьте /start."
	msgStrayMedia  = "Сначала нажмите «Создать объявление», чтобы добавить фото или видео."
	msgTryLater    = "⚠️ Что-то пошло не так, попробуйте позже."

	msgHelp = "Этот бот принимает рекламные объявления.\n" +
		"/start — регистрация и выбор роли\n" +
		"«Создать объявление» — пошаговое создание объявления\n" +
		"«Мои кампании» — список ваших объявлений\n" +
		"«Баланс» — текущий баланс"
)
