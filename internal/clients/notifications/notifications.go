package notifications

type Notifier interface {
	NotifyResolveFailed(title string)
	Test() error
}
