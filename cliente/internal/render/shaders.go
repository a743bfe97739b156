package render

// Shader dos chunks: textura do atlas com luz direcional simples baseada na
// normal baked de cada face.
const blockVertexShader = `
#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;

out vec2 fragTexCoord;
out vec3 fragNormal;
out float fragHeight;

void main() {
    fragTexCoord = vertexTexCoord;
    fragNormal = vertexNormal;
    fragHeight = vertexPosition.y;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const blockFragmentShader = `
#version 330
in vec2 fragTexCoord;
in vec3 fragNormal;
in float fragHeight;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform float ambient;

out vec4 finalColor;

float hash(vec2 p) {
    return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453123);
}

void main() {
    vec4 texelColor = texture(texture0, fragTexCoord);
    // recorte das plantas (quads cruzados)
    if (texelColor.a < 0.1) discard;

    float diffuse = max(dot(normalize(fragNormal), -normalize(lightDir)), 0.0);
    float light = ambient + (1.0 - ambient) * diffuse;

    // Variação leve por texel para quebrar a repetição do atlas
    float n = hash(floor(fragTexCoord * 64.0));
    vec3 color = texelColor.rgb * colDiffuse.rgb * light * (0.94 + 0.12 * n);

    finalColor = vec4(color, texelColor.a * colDiffuse.a);
}
`
