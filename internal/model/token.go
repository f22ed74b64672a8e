package model

type TokenResponse struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenExpiresIn int    `json:"accessTokenExpiresIn"`
	TokenType            string `json:"tokenType"`
}

type TokenEnvelope struct {
	Success bool          `json:"success"`
	Data    TokenResponse `json:"data"`
}
