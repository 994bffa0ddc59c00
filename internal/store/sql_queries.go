package store

const (
	createUser = `INSERT INTO users (username, email, password_hash, security_question, security_answer)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, username, email, role, credits, created_at;`

	findUserByUsername = `SELECT id, username, email, password_hash, security_question, security_answer, role, credits, created_at, last_login
	FROM users
	WHERE username = $1;`

	findUserByID = `SELECT id, username, email, password_hash, security_question, security_answer, role, credits, created_at, last_login
	FROM users
	WHERE id = $1;`

	touchLastLogin = `UPDATE users SET last_login = NOW() WHERE id = $1;`

	addUserCredits = `UPDATE users SET credits = credits + $2 WHERE id = $1
	RETURNING credits;`

	createSession = `INSERT INTO sessions (id, user_id, expires_at)
	VALUES ($1, $2, $3)
	RETURNING id, user_id, expires_at, created_at;`

	findLiveSession = `SELECT id, user_id, expires_at, created_at
	FROM sessions
	WHERE id = $1 AND user_id = $2 AND expires_at > NOW();`

	deleteSession = `DELETE FROM sessions WHERE id = $1;`

	deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= NOW();`

	findCharactersByUser = `SELECT id, user_id, name, class, level, experience, resets, created_at
	FROM characters
	WHERE user_id = $1
	ORDER BY level DESC, experience DESC;`

	createTransaction = `INSERT INTO transactions (user_id, amount, credits, payment_method, payment_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, user_id, amount, credits, payment_method, payment_id, status, created_at, updated_at;`

	setTransactionPaymentID = `UPDATE transactions SET payment_id = $2, updated_at = NOW() WHERE id = $1;`

	findTransactionByID = `SELECT id, user_id, amount, credits, payment_method, payment_id, status, created_at, updated_at
	FROM transactions
	WHERE id = $1;`

	findTransactionByPaymentID = `SELECT id, user_id, amount, credits, payment_method, payment_id, status, created_at, updated_at
	FROM transactions
	WHERE payment_method = $1 AND payment_id = $2;`

	findTransactionsByUser = `SELECT id, user_id, amount, credits, payment_method, payment_id, status, created_at, updated_at
	FROM transactions
	WHERE user_id = $1
	ORDER BY created_at DESC;`

	// completeTransaction flips a transaction to completed only while it is
	// still pending. Zero affected rows means the notification was already
	// processed (or the transaction failed), so the caller must not credit.
	completeTransaction = `UPDATE transactions
	SET status = 'completed', payment_id = $2, updated_at = NOW()
	WHERE id = $1 AND status = 'pending'
	RETURNING id, user_id, amount, credits, payment_method, payment_id, status, created_at, updated_at;`

	listNews = `SELECT id, title, content, image_url, author, created_at
	FROM news
	ORDER BY created_at DESC;`

	createNews = `INSERT INTO news (title, content, image_url, author)
	VALUES ($1, $2, $3, $4)
	RETURNING id, title, content, image_url, author, created_at;`

	updateNews = `UPDATE news SET title = $2, content = $3, image_url = $4 WHERE id = $1;`

	deleteNews = `DELETE FROM news WHERE id = $1;`

	countUsers          = `SELECT COUNT(*) FROM users;`
	countActiveUsers    = `SELECT COUNT(*) FROM users WHERE last_login > NOW() - INTERVAL '24 hours';`
	countCharacters     = `SELECT COUNT(*) FROM characters;`
	countTransactions   = `SELECT COUNT(*) FROM transactions;`
	sumCompletedCredits = `SELECT COALESCE(SUM(credits), 0) FROM transactions WHERE status = 'completed';`

	findRecentTransactions = `SELECT t.id, t.amount, t.credits, t.status, t.created_at, u.username
	FROM transactions t
	JOIN users u ON t.user_id = u.id
	ORDER BY t.created_at DESC
	LIMIT $1;`

	findUserIDByEmailOthers = `SELECT id FROM users WHERE email = $1 AND id <> $2;`
)
