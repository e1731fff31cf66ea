/*
Copyright 2026 the ServeRest API Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package schema

// Messages returned by the API.
const (
	MessageLoginSucceeded   = "Login realizado com sucesso"
	MessageLoginFailed      = "Email e/ou senha inválidos"
	MessageCreated          = "Cadastro realizado com sucesso"
	MessageUpdated          = "Registro alterado com sucesso"
	MessageDeleted          = "Registro excluído com sucesso"
	MessageNothingDeleted   = "Nenhum registro excluído"
	MessageDuplicateEmail   = "Este email já está sendo usado"
	MessageDuplicateName    = "Já existe produto com esse nome"
	MessageUserNotFound     = "Usuário não encontrado"
	MessageProductNotFound  = "Produto não encontrado"
	MessageInvalidToken     = "Token de acesso ausente, inválido, expirado ou usuário do token não existe mais"
	MessageAdminOnly        = "Rota exclusiva para administradores"
	MessageMalformedBody    = "Adicione aspas em todos os valores. Para mais informações acesse a issue https://github.com/ServeRest/ServeRest/issues/225"
	MessageInvalidID        = "id deve ter exatamente 16 caracteres alfanuméricos"
	MessageInvalidEmail     = "email deve ser um email válido"
	MessageInvalidAdminFlag = "administrador deve ser 'true' ou 'false'"
)

// RequiredMessage and the functions below build per field validation messages.
func RequiredMessage(field string) string {
	return field + " é obrigatório"
}

func BlankMessage(field string) string {
	return field + " não pode ficar em branco"
}

func NotStringMessage(field string) string {
	return field + " deve ser uma string"
}

func NotNumberMessage(field string) string {
	return field + " deve ser um número"
}

func NotIntegerMessage(field string) string {
	return field + " deve ser um número inteiro"
}

func NotPositiveMessage(field string) string {
	return field + " deve ser um número positivo"
}

func NegativeMessage(field string) string {
	return field + " deve ser maior ou igual a 0"
}

func NotAllowedMessage(field string) string {
	return field + " não é permitido"
}
