package bot

import "fmt"

// Reply texts. Markdown is rendered by the transport.

func welcomeMessage(limit int) string {
	return fmt.Sprintf(`🌿 *Welcome to VerseGuide!*
Explore Bible verses and reflections that offer clarity, peace, and inspiration for whatever you're facing today.

📖 *How to use:*
Type a word or phrase like *"Hope"*, *"Lord, give me strength"*, or *"God, I need you right now"*.
VerseGuide will share a matching Bible verse and reflection 🙏.

📊 *Commands:*
/help - Show this help message
/status - Check your remaining requests

⚖️ *Rate Limit:* %d requests per day. (Free plan)

— VerseGuide by Chikere Ezeh`, limit)
}

func statusMessage(used, remaining, limit int) string {
	return fmt.Sprintf(`📊 *Your Daily Status (Free plan)*

✅ Used: %d request(s)
🔄 Remaining: %d request(s)
📅 Limit: %d per day
🕐 Resets: Midnight (your time)`, used, remaining, limit)
}

const resetMessage = "✅ Your daily limit has been reset successfully."

const emptyQueryMessage = "⚠️ Please enter a word or phrase to search for Bible verses."

func tooLongMessage(maxLen int) string {
	return fmt.Sprintf("⚠️ Your query is too long. Please keep it under %d characters.", maxLen)
}

func quotaExceededMessage(limit int) string {
	return fmt.Sprintf(`⚠️ You've reached your daily limit of %d requests.
Your free plan resets at midnight.. 🙏

Use /status to check your remaining requests.`, limit)
}

const noVerseMessage = `📖 No Bible verse found for that phrase. Try another keyword like *"faith"*, *"love"*, or *"strength"*.`

const backendFailedMessage = "❌ Sorry, something went wrong while searching for Bible verses. Please try again later."

const unexpectedErrorMessage = "❌ An unexpected error occurred. Please try again later. Thank you!"

func remainingFooter(remaining, limit int) string {
	return fmt.Sprintf("\n\n📊 Requests left today: *%d/%d*", remaining, limit)
}
